package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Each key is also its English text.
const (
	MsgDefaultAgeError          = "Due to your age, you're not eligible to register."
	MsgDefaultMissingFieldError = "You must fill out your birthday."

	MsgMembershipsEmpty        = "Memberships cannot be empty."
	MsgMinimumAgeEmpty         = "Minimum age cannot be empty."
	MsgMinimumAgeNegative      = "Minimum age cannot be negative."
	MsgAgeErrorEmpty           = "Error message cannot be empty."
	MsgMissingFieldErrorEmpty  = "Verification error message cannot be empty."
	MsgDateFieldWrongType      = "Birthday field must be a date field."
	MsgDateFieldHiddenAtSignup = `Custom field must have "Show at Signup" enabled.`
	MsgDateFieldUnknown        = "Birthday field provided is not a valid custom field."
)

func init() {
	register(language.German, map[string]string{
		MsgDefaultAgeError:          "Aufgrund deines Alters kannst du dich leider nicht registrieren.",
		MsgDefaultMissingFieldError: "Bitte gib dein Geburtsdatum an.",
		MsgMembershipsEmpty:         "Die Mitgliedschaften dürfen nicht leer sein.",
		MsgMinimumAgeEmpty:          "Das Mindestalter darf nicht leer sein.",
		MsgMinimumAgeNegative:       "Das Mindestalter darf nicht negativ sein.",
		MsgAgeErrorEmpty:            "Die Fehlermeldung darf nicht leer sein.",
		MsgMissingFieldErrorEmpty:   "Die Meldung für ein fehlendes Geburtsdatum darf nicht leer sein.",
		MsgDateFieldWrongType:       "Das Geburtstagsfeld muss ein Datumsfeld sein.",
		MsgDateFieldHiddenAtSignup:  `Für das Feld muss „Bei Registrierung anzeigen" aktiviert sein.`,
		MsgDateFieldUnknown:         "Das angegebene Geburtstagsfeld ist kein gültiges Zusatzfeld.",
	})
	register(language.MustParse("pt-BR"), map[string]string{
		MsgDefaultAgeError:          "Devido à sua idade, você não pode se cadastrar.",
		MsgDefaultMissingFieldError: "Você precisa informar sua data de nascimento.",
		MsgMembershipsEmpty:         "As assinaturas não podem ficar vazias.",
		MsgMinimumAgeEmpty:          "A idade mínima não pode ficar vazia.",
		MsgMinimumAgeNegative:       "A idade mínima não pode ser negativa.",
		MsgAgeErrorEmpty:            "A mensagem de erro não pode ficar vazia.",
		MsgMissingFieldErrorEmpty:   "A mensagem de verificação não pode ficar vazia.",
		MsgDateFieldWrongType:       "O campo de aniversário deve ser um campo de data.",
		MsgDateFieldHiddenAtSignup:  `O campo personalizado precisa ter "Mostrar no cadastro" ativado.`,
		MsgDateFieldUnknown:         "O campo de aniversário informado não é um campo personalizado válido.",
	})
}

func register(tag language.Tag, messages map[string]string) {
	for key, value := range messages {
		// SetString only fails on a malformed tag, and these are constants.
		_ = message.SetString(tag, key, value)
	}
}
