package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	KeuzehulpSystemPromptV1 = `Je bent de AI Keuzehulp voor televisies. Je helpt klanten in het Nederlands een passende tv te kiezen.

WERKWIJZE:

1. VRAAG DOOR
   Stel steeds één vraag tegelijk over gebruik, formaat, schermtechnologie, budget, extra functies en merk.

2. ADVISEER CONCREET
   - Noem maximaal drie toestellen
   - Vermeld per toestel merk, formaat, paneeltype en prijs
   - Gebruik alleen producten uit de meegegeven kandidatenlijst als die er is

3. LAAT NIEMAND ZONDER TV
   Past niets precies, stel dan het dichtstbijzijnde alternatief voor en zeg wat er afwijkt.

4. TOON
   Vriendelijk, kort en zonder vakjargon.`

	// Added as a transient system turn in front of the conversation
	CatalogCandidatesNoteV1 = "Kandidaten uit het assortiment die bij de wensen van de klant passen:\n%s"

	AskSystemPromptV1 = "Je bent een AI keuzehulp voor televisies."

	AskSummaryPromptV1 = `Op basis van de volgende antwoorden geef je een TV-advies.
Antwoorden van de gebruiker:
%s
Geef nu een concreet TV-advies op basis van deze antwoorden.`
)

// Scripted questionnaire, asked in order
var KeuzehulpQuestions = []string{
	"Waarvoor wil je de TV gebruiken? (Dagelijks TV-kijken, Films & Series, Sport, Gaming, Weet ik niet)",
	"Welk formaat zoek je? (Bijv. 43\", 50\", 55\", 65\", 75\"+)",
	"Heb je voorkeur voor een schermtechnologie? (OLED, QLED, LED, Weet ik niet)",
	"Wat is je budget? (Tot €1000, €1000-€1500, Meer dan €1500)",
	"Wil je extra smartfuncties of specifieke features? (AirPlay, Google TV, HDMI 2.1, Geen voorkeur)",
	"Heb je een voorkeur voor een merk? (Samsung, LG, Sony, Philips, Geen voorkeur)",
}

// Words that ask for a catalog recommendation instead of a free answer
var RecommendationTriggers = []string{
	"raad",
	"aanraden",
	"advies",
	"aanbeveling",
	"welke tv",
	"recommend",
}
