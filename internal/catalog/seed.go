package catalog

import (
	"context"
	"fmt"

	"appeal/internal/i18n"
	"appeal/pkg/domain"
)

// Seed installs the standard developmental path. Safe to run on every boot:
// definitions that already exist are left untouched.
func Seed(ctx context.Context, store Store) error {
	for i, def := range standardDefinitions {
		def.ID = domain.NewDefinitionID()
		def.Position = i + 1
		if _, err := store.CreateIfAbsent(ctx, def); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return nil
}

// StandardDefinitions returns a copy of the seeded milestone sequence.
func StandardDefinitions() []Definition {
	out := make([]Definition, len(standardDefinitions))
	copy(out, standardDefinitions)
	return out
}

// standardDefinitions is the programme's fixed milestone sequence. Hindi and
// Kannada strings exist for the subset the translation team has covered;
// Resolve falls back to English for the rest.
var standardDefinitions = []Definition{
	{
		Title: i18n.Text{
			i18n.LocaleEnglish: "New Born",
			i18n.LocaleHindi:   "नवजात",
			i18n.LocaleKannada: "ನವಜಾತ ಶಿಶು",
		},
		Description: i18n.Text{
			i18n.LocaleEnglish: "Welcome to the world!",
			i18n.LocaleHindi:   "बच्चा रोशनी और आवाज़ पर प्रतिक्रिया करता है।",
			i18n.LocaleKannada: "ಮಗು ಬೆಳಕು ಮತ್ತು ಶಬ್ದಕ್ಕೆ ಪ್ರತಿಕ್ರಿಯಿಸುತ್ತದೆ.",
		},
		ExpectedAgeMonths: 0,
	},
	{
		Title: i18n.Text{
			i18n.LocaleEnglish: "Social Smile",
			i18n.LocaleHindi:   "सामाजिक मुस्कान",
			i18n.LocaleKannada: "ಸಾಮಾಜಿಕ ನಗು",
		},
		Description: i18n.Text{
			i18n.LocaleEnglish: "Smiles at people",
			i18n.LocaleHindi:   "बच्चा देखकर मुस्कुराता है।",
			i18n.LocaleKannada: "ಜನರನ್ನು ನೋಡಿದಾಗ ಮಗು ನಗುತ್ತದೆ.",
		},
		ExpectedAgeMonths: 2,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Head Up"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Holds head up when on tummy"},
		ExpectedAgeMonths: 2,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Rollover"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Rolls from tummy to back"},
		ExpectedAgeMonths: 4,
	},
	{
		Title: i18n.Text{
			i18n.LocaleEnglish: "Babbling",
			i18n.LocaleHindi:   "बड़बड़ाना",
			i18n.LocaleKannada: "ಬಡಬಡಿಸುವುದು",
		},
		Description: i18n.Text{
			i18n.LocaleEnglish: "Makes sounds like 'ooh' and 'aah'",
			i18n.LocaleHindi:   "बच्चा 'बा-बा', 'दा-दा' जैसी आवाज़ें निकालता है।",
			i18n.LocaleKannada: "ಮಗು 'ಬಾ-ಬಾ', 'ದಾ-ದಾ' ಎಂದು ಶಬ್ದ ಮಾಡುತ್ತದೆ.",
		},
		ExpectedAgeMonths: 4,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Sits with Support"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Sits without help for short periods"},
		ExpectedAgeMonths: 6,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Passes Objects"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Passes toy from one hand to another"},
		ExpectedAgeMonths: 6,
	},
	{
		Title: i18n.Text{
			i18n.LocaleEnglish: "Crawling",
			i18n.LocaleHindi:   "घुटनों के बल चलना",
			i18n.LocaleKannada: "ತೆವಳುವುದು",
		},
		Description: i18n.Text{
			i18n.LocaleEnglish: "Crawls on hands and knees",
			i18n.LocaleHindi:   "बच्चा घुटनों के बल चलता है।",
			i18n.LocaleKannada: "ಮಗು ಕೈ ಮತ್ತು ಮೊಣಕಾಲುಗಳ ಮೇಲೆ ತೆವಳುತ್ತದೆ.",
		},
		ExpectedAgeMonths: 9,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Pincer Grasp"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Picks up small food with thumb/index"},
		ExpectedAgeMonths: 9,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "First Steps"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Takes steps holding on or alone"},
		ExpectedAgeMonths: 12,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "First Words"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Says 'mama' or 'dada'"},
		ExpectedAgeMonths: 12,
	},
	{
		Title: i18n.Text{
			i18n.LocaleEnglish: "Walking Well",
			i18n.LocaleHindi:   "चलना",
			i18n.LocaleKannada: "ನಡೆಯುವುದು",
		},
		Description: i18n.Text{
			i18n.LocaleEnglish: "Walks alone steadily",
			i18n.LocaleHindi:   "बच्चा स्वतंत्र रूप से चलता है।",
			i18n.LocaleKannada: "ಮಗು ಸ್ವತಂತ್ರವಾಗಿ ನಡೆಯುತ್ತದೆ.",
		},
		ExpectedAgeMonths: 18,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Spoon Feeding"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Eats with a spoon"},
		ExpectedAgeMonths: 18,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "Running"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Runs well"},
		ExpectedAgeMonths: 24,
	},
	{
		Title:             i18n.Text{i18n.LocaleEnglish: "2-Word Sentences"},
		Description:       i18n.Text{i18n.LocaleEnglish: "Puts two words together"},
		ExpectedAgeMonths: 24,
	},
}
