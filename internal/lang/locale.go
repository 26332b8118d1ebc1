package lang

import (
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// Localized verdict vocabulary. The tables are data, not control flow, so the
// policy can be tuned without touching the composer.

var uncertainSynonyms = map[string]struct{}{
	"غير مؤكد":      {},
	"uncertain":     {},
	"incertain":     {},
	"incierto":      {},
	"nejisté":       {},
	"nejiste":       {},
	"nejistá":       {},
	"unsicher":      {},
	"belirsiz":      {},
	"неопределенно": {},
	"неопределённо": {},
	"неопределенный": {},
}

var falseSynonyms = map[string]struct{}{
	"كاذب":     {},
	"false":    {},
	"faux":     {},
	"falso":    {},
	"nepravda": {},
	"falsch":   {},
	"yanlış":   {},
	"ложь":     {},
	"ложно":    {},
}

var trueSynonyms = map[string]struct{}{
	"حقيقي":     {},
	"true":      {},
	"vrai":      {},
	"verdadero": {},
	"pravda":    {},
	"wahr":      {},
	"doğru":     {},
	"правда":    {},
}

// IsUncertainTerm reports whether the verdict word matches a localized
// uncertain synonym in any supported language.
func IsUncertainTerm(caseWord string) bool {
	_, ok := uncertainSynonyms[strings.ToLower(strings.TrimSpace(caseWord))]
	return ok
}

// StateFor normalizes a localized verdict word to its VerdictState. Words
// outside the known vocabulary normalize to Uncertain, which keeps the
// empty-sources invariant on anything the model improvised.
func StateFor(caseWord string) model.VerdictState {
	w := strings.ToLower(strings.TrimSpace(caseWord))
	if _, ok := trueSynonyms[w]; ok {
		return model.VerdictTrue
	}
	if _, ok := falseSynonyms[w]; ok {
		return model.VerdictFalse
	}
	return model.VerdictUncertain
}

var uncertainWords = map[string]string{
	"ar": "غير مؤكد",
	"en": "Uncertain",
	"fr": "Incertain",
	"es": "Incierto",
	"cs": "Nejisté",
	"de": "Unsicher",
	"tr": "Belirsiz",
	"ru": "Неопределенно",
}

// UncertainWord returns the localized uncertain verdict word
func UncertainWord(lang string) string {
	if w, ok := uncertainWords[lang]; ok {
		return w
	}
	return uncertainWords["en"]
}

var noResultsMessages = map[string]string{
	"ar": "لم يتم العثور على نتائج بحث.",
	"en": "No search results were found.",
	"fr": "Aucun résultat de recherche trouvé.",
	"es": "No se encontraron resultados de búsqueda.",
	"cs": "Nebyly nalezeny žádné výsledky vyhledávání.",
	"de": "Es wurden keine Suchergebnisse gefunden.",
	"tr": "Arama sonuçları bulunamadı.",
	"ru": "Результаты поиска не найдены.",
}

// NoResultsMessage returns the localized "no search results" explanation
func NoResultsMessage(lang string) string {
	if m, ok := noResultsMessages[lang]; ok {
		return m
	}
	return noResultsMessages["en"]
}

var checkErrorMessages = map[string]string{
	"ar": "⚠️ حدث خطأ أثناء التحقق.",
	"en": "⚠️ An error occurred during fact-checking.",
	"fr": "⚠️ Une erreur s'est produite lors de la vérification des faits.",
	"es": "⚠️ Se produjo un error durante la verificación de hechos.",
	"cs": "⚠️ Během ověřování faktů došlo k chybě.",
	"de": "⚠️ Bei der Faktenprüfung ist ein Fehler aufgetreten.",
	"tr": "⚠️ Doğrulama sırasında bir hata oluştu.",
	"ru": "⚠️ Во время проверки фактов произошла ошибка.",
}

// CheckErrorMessage returns the localized generic fact-check failure text
func CheckErrorMessage(lang string) string {
	if m, ok := checkErrorMessages[lang]; ok {
		return m
	}
	return checkErrorMessages["en"]
}

var newsErrorMessages = map[string]string{
	"ar": "عذراً، حدث خطأ أثناء كتابة المقال الإخباري. يرجى المحاولة مرة أخرى.",
	"en": "Sorry, an error occurred while writing the news article. Please try again.",
	"fr": "Désolé, une erreur s'est produite lors de la rédaction de l'article de presse. Veuillez réessayer.",
	"es": "Lo siento, ocurrió un error al escribir el artículo de noticias. Por favor, inténtalo de nuevo.",
}

// NewsErrorMessage returns the localized article-generation failure text
func NewsErrorMessage(lang string) string {
	if m, ok := newsErrorMessages[lang]; ok {
		return m
	}
	return newsErrorMessages["en"]
}

var tweetErrorMessages = map[string]string{
	"ar": "⚠️ حدث خطأ أثناء إنشاء التغريدة. يرجى المحاولة مرة أخرى.",
	"en": "⚠️ An error occurred while generating the tweet. Please try again.",
	"fr": "⚠️ Une erreur s'est produite lors de la génération du tweet. Veuillez réessayer.",
	"es": "⚠️ Ocurrió un error al generar el tweet. Por favor, inténtalo de nuevo.",
}

// TweetErrorMessage returns the localized tweet-generation failure text
func TweetErrorMessage(lang string) string {
	if m, ok := tweetErrorMessages[lang]; ok {
		return m
	}
	return tweetErrorMessages["en"]
}

var imageErrorMessages = map[string]string{
	"ar": "حدث خطأ أثناء تحليل الصورة. يرجى المحاولة مرة أخرى.",
	"en": "An error occurred during image analysis. Please try again.",
	"fr": "Une erreur s'est produite lors de l'analyse de l'image. Veuillez réessayer.",
	"es": "Ocurrió un error durante el análisis de la imagen. Por favor, inténtalo de nuevo.",
}

// ImageErrorMessage returns the localized image-analysis failure text
func ImageErrorMessage(lang string) string {
	if m, ok := imageErrorMessages[lang]; ok {
		return m
	}
	return imageErrorMessages["en"]
}

var cannotAnalyzeMessages = map[string]string{
	"ar": "تعذر تحليل هذه الصورة.",
	"en": "This image could not be analyzed.",
	"fr": "Cette image n'a pas pu être analysée.",
	"es": "No se pudo analizar esta imagen.",
}

// CannotAnalyzeMessage returns the localized model-refusal text, distinct
// from the technical-failure message.
func CannotAnalyzeMessage(lang string) string {
	if m, ok := cannotAnalyzeMessages[lang]; ok {
		return m
	}
	return cannotAnalyzeMessages["en"]
}
