package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/preference"
	"tv-keuzehulp-be/pkg/questionnaire"
	"tv-keuzehulp-be/pkg/recommend"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var adviseAnswers []string

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Walk the questionnaire offline and print a catalog recommendation",
	Long: `Asks the scripted questions on the terminal (or takes them from --answer),
extracts preferences and prints the recommendation the server would give
for a "wat raad je aan?" message. No completion provider is called.`,
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().StringArrayVarP(&adviseAnswers, "answer", "a", nil, "answer in question order (repeatable, skips the prompt)")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	c, err := catalog.LoadCSV(catalogPath)
	if err != nil {
		return err
	}

	answers := adviseAnswers
	if len(answers) == 0 {
		answers, err = askInteractively(questionnaire.NewSequencer(constant.KeuzehulpQuestions))
		if err != nil {
			return err
		}
	}

	prefs := preference.NewExtractor().ExtractTexts(answers)
	color.Yellow("\nHerkende voorkeuren")
	for category, literal := range prefs.Map() {
		fmt.Printf("  %-10s %s\n", category, literal)
	}

	result := recommend.NewRecommender(recommend.DefaultLimit).Recommend(prefs, c)
	if len(result.Relaxations) > 0 {
		color.Magenta("\nVersoepeld: %v (fallback: %t)", result.Relaxations, result.Fallback)
	}

	color.Green("\n%s", recommend.Render(result))
	return nil
}

func askInteractively(seq *questionnaire.Sequencer) ([]string, error) {
	reader := bufio.NewReader(os.Stdin)
	var answers []string

	index := 0
	for {
		step, err := seq.Next(index)
		if err != nil {
			return nil, err
		}
		if step.Done {
			return answers, nil
		}

		color.Cyan("%d/%d %s", step.Index+1, seq.Len(), step.Question)
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return answers, nil
		}

		line = strings.TrimSpace(line)
		next := seq.Advance(index, line)
		if next == index {
			color.Red("Geef een antwoord om verder te gaan.")
			continue
		}
		answers = append(answers, line)
		index = next
	}
}
