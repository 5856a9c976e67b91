package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator resolves message templates against the x/text catalog. When no
// translation is registered for the template it falls back to the raw
// template text, so missing copy never breaks delivery.
type Translator struct {
	printer *message.Printer
}

// NewTranslator creates a Translator for the given BCP 47 tag. An empty or
// unparsable tag falls back to English.
func NewTranslator(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Translator{printer: message.NewPrinter(tag)}
}

// Translate renders the template with the supplied substitutions.
func (t *Translator) Translate(template string, args ...interface{}) string {
	return t.printer.Sprintf(template, args...)
}
