package constant

const (
	MsgNoQuestion      = "Ik heb geen vraag ontvangen."
	MsgInvalidRequest  = "Ongeldig verzoek."
	MsgUpstreamFailure = "Sorry, er ging iets mis bij het ophalen van een antwoord. Probeer het later opnieuw."
	MsgInternalError   = "Er ging iets mis aan onze kant."
	MsgUnauthorized    = "Je bent niet ingelogd."
	MsgWrongPassword   = "Onjuist wachtwoord."
	MsgInvalidIndex    = "Ongeldige vraagindex."
	MsgLanding         = "AI Keuzehulp is running!"
)

const (
	ModuleKeuzehulp = "KEUZEHULP"
	ModuleAuth      = "AUTH"
	ModuleHTTP      = "HTTP"
	ModuleEvents    = "EVENTS"
	ModuleSession   = "SESSION"
)
