package search

import (
	"encoding/json"
	"fmt"

	"itpf-legal-api/internal/domain/corpus"
)

// System prompts anchor the model to the corpus and forbid outside
// knowledge. The Arabic prompt addresses the model as a legal expert
// on the federation rules; the English one mirrors it.
const arabicSystemPrompt = `أنت خبير قانوني متخصص في قوانين وقواعد الاتحاد الدولي للفروسية وسباقات الخيل.
أجب فقط بالاستناد إلى الوثائق القانونية المقدمة لك، ولا تستخدم أي معرفة خارجية.
عند الإجابة اذكر دائماً رقم المادة والنص ذي الصلة.
أعد الإجابة بصيغة JSON فقط بالشكل المطلوب دون أي نص إضافي.`

const englishSystemPrompt = `You are a legal expert specialized in the equestrian and horse racing federation rules.
Answer strictly from the legal documents provided to you and never from outside knowledge.
Always cite the article number and the relevant text in your answer.
Return the answer as JSON only, in the requested shape, with no extra text.`

// Instruction appended after the corpus. The shape is the contract the
// aggregator parses; keep the field list in sync with SearchResult.
const arabicInstruction = `ابحث في الوثائق أعلاه عن أفضل المواد المطابقة للاستفسار التالي وأعد النتائج بصيغة JSON:
{"results": [{"article_number": "...", "title": "...", "relevant_text": "...", "explanation": "...", "score": 0}]}
رتب النتائج من الأعلى صلة إلى الأقل، بحد أقصى %d نتائج.
الاستفسار: %s`

const englishInstruction = `Search the documents above for the articles that best match the following query and return the results as JSON:
{"results": [{"article_number": "...", "title": "...", "relevant_text": "...", "explanation": "...", "score": 0}]}
Order results from most to least relevant, at most %d results.
Query: %s`

// SystemPrompt returns the system message for a language.
func SystemPrompt(lang corpus.Language) string {
	if lang == corpus.LanguageArabic {
		return arabicSystemPrompt
	}
	return englishSystemPrompt
}

// BuildUserPrompt embeds the corpus as JSON followed by the search
// instruction for one sub-query.
func BuildUserPrompt(subQuery string, corp *corpus.Corpus) (string, error) {
	doc, err := json.Marshal(corp)
	if err != nil {
		return "", fmt.Errorf("failed to encode corpus for prompt: %w", err)
	}

	instruction := englishInstruction
	if corp.Language == corpus.LanguageArabic {
		instruction = arabicInstruction
	}
	return string(doc) + "\n\n" + fmt.Sprintf(instruction, MaxResults, subQuery), nil
}
