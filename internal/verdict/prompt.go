package verdict

import (
	"fmt"
	"strings"
	"time"

	"github.com/factlens/factlens/internal/model"
)

// factSystemPrompt enforces the closed localized verdict vocabulary, the
// fixed untranslated JSON keys, and the uncertain-implies-no-sources rule.
// LANG_HINT stays symbolic here; the user message binds it to a concrete
// code via its "LANG_HINT: <code>" line.
const factSystemPrompt = `You are a rigorous fact-checking assistant. Use ONLY the sources provided below.
- You can ONLY return THREE possible verdicts: True, False OR Uncertain.
- If the claim is supported by credible sources with clear evidence → verdict: True
- If credible sources clearly contradict or debunk the claim → verdict: False
- If evidence is insufficient, conflicting, unclear, or off-topic → verdict: Uncertain
- Prefer official catalogs and reputable agencies over blogs or social posts.
- Match the claim's date/place/magnitude when relevant; do not infer beyond the given sources.

LANGUAGE POLICY:
- You MUST respond **entirely** in the language specified by LANG_HINT.
- Do NOT switch to another language or translate.
- Examples:
   • If LANG_HINT = 'fr' → respond fully in French.
   • If LANG_HINT = 'ar' → respond fully in Arabic.
   • If LANG_HINT = 'en' → respond fully in English.
   • If LANG_HINT = 'es' → respond fully in Spanish.
   • If LANG_HINT = 'cs' → respond fully in Czech.

FORMAT RULES:
• You MUST write all free-text fields strictly in LANG_HINT language.
• JSON keys must remain EXACTLY as: "الحالة", "talk", "sources" (do not translate keys).
• The value of "الحالة" must be ONLY one of these options (localized):
   - Arabic: حقيقي / كاذب / غير مؤكد
   - English: True / False / Uncertain
   - French: Vrai / Faux / Incertain
   - Spanish: Verdadero / Falso / Incierto
   - Czech: Pravda / Nepravda / Nejisté

RESPONSE FORMAT (JSON ONLY — no extra text):
{
  "الحالة": "<Localized verdict: True, False OR Uncertain ONLY>",
  "talk": "<Explanation paragraph ~350 words in LANG_HINT>",
  "sources": [ {"title": "<title>", "url": "<url>"}, ... ]
}

FINAL RULES:
1) Output STRICTLY valid JSON (UTF-8). No extra commentary before or after.
2) If the claim is Uncertain → keep 'sources' as an empty array [].
3) If the claim is True or False → include ALL supporting/refuting sources (no fixed limit).
4) Do not fabricate URLs or titles; use only provided sources.`

const (
	contextDelimiter  = "\n\n---\n\n"
	titleClipLength   = 100
	snippetClipLength = 200
)

// buildContext concatenates each evidence item's clipped title, snippet and
// link, separated by the fixed delimiter.
func buildContext(evidence []model.EvidenceItem) string {
	blocks := make([]string, 0, len(evidence))
	for _, e := range evidence {
		blocks = append(blocks, fmt.Sprintf(
			"عنوان: %s\nملخص: %s\nرابط: %s",
			clip(e.Title, titleClipLength),
			clip(e.Snippet, snippetClipLength),
			e.Link,
		))
	}
	return strings.Join(blocks, contextDelimiter)
}

// buildUserMessage assembles the user turn: language hint, current date,
// the claim, and the evidence context block.
func buildUserMessage(claim, language, context string, now time.Time) string {
	return strings.TrimSpace(fmt.Sprintf(`
LANG_HINT: %s
CURRENT_DATE: %s

الادعاء:
%s

السياق:
%s
`, language, now.Format("2006-01-02"), claim, context))
}

// clip shortens s to at most n runes, appending an ellipsis when cut
func clip(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "…"
}
