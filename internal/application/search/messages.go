package search

import (
	"fmt"

	"itpf-legal-api/internal/domain/corpus"
	apperrors "itpf-legal-api/pkg/errors"
)

// User-facing messages, keyed by language. Arabic is the primary
// audience; English mirrors it.
var failureMessages = map[corpus.Language]string{
	corpus.LanguageArabic:  "عذراً، تعذر إتمام البحث في الوقت الحالي. يرجى المحاولة مرة أخرى.",
	corpus.LanguageEnglish: "Sorry, the search could not be completed right now. Please try again.",
}

var noResultsMessages = map[corpus.Language]string{
	corpus.LanguageArabic:  "لم يتم العثور على نتائج مطابقة لاستفسارك في الوثائق القانونية.",
	corpus.LanguageEnglish: "No matching results were found in the legal documents for your query.",
}

var foundMessages = map[corpus.Language]string{
	corpus.LanguageArabic:  "تم العثور على %d نتيجة ذات صلة.",
	corpus.LanguageEnglish: "Found %d relevant result(s).",
}

var validationMessages = map[apperrors.ErrorCode]map[corpus.Language]string{
	apperrors.CodeEmptyQuery: {
		corpus.LanguageArabic:  "يرجى إدخال استفسار للبحث.",
		corpus.LanguageEnglish: "Please enter a query to search.",
	},
	apperrors.CodeQueryTooLong: {
		corpus.LanguageArabic:  "الاستفسار طويل جداً، الحد الأقصى 1000 حرف.",
		corpus.LanguageEnglish: "The query is too long; the maximum is 1000 characters.",
	},
	apperrors.CodeInvalidLanguage: {
		corpus.LanguageArabic:  "اللغة المطلوبة غير مدعومة.",
		corpus.LanguageEnglish: "The requested language is not supported.",
	},
}

// FailureMessage is the localized message attached to a response whose
// every sub-query failed.
func FailureMessage(lang corpus.Language) string {
	if m, ok := failureMessages[lang]; ok {
		return m
	}
	return failureMessages[corpus.LanguageEnglish]
}

// ResultMessage describes a successful aggregation.
func ResultMessage(lang corpus.Language, count int) string {
	if count == 0 {
		if m, ok := noResultsMessages[lang]; ok {
			return m
		}
		return noResultsMessages[corpus.LanguageEnglish]
	}
	format, ok := foundMessages[lang]
	if !ok {
		format = foundMessages[corpus.LanguageEnglish]
	}
	return fmt.Sprintf(format, count)
}

// ValidationMessage localizes a request-validation error. Unknown
// codes fall back to the error's own message.
func ValidationMessage(err *apperrors.AppError, lang corpus.Language) string {
	if byLang, ok := validationMessages[err.Code]; ok {
		if m, ok := byLang[lang]; ok {
			return m
		}
		return byLang[corpus.LanguageEnglish]
	}
	return err.Message
}
