package i18n

import (
	"context"

	dErrors "appeal/pkg/domain-errors"
)

// Provider resolves a label table for a locale. Implementations may fetch
// from a translation service; failures surface as dependency errors.
type Provider interface {
	Labels(ctx context.Context, locale Locale) (Labels, error)
}

// Static serves the built-in label tables. It is the canonical source in
// deployments without an external translation service.
type Static struct{}

// NewStatic returns a provider backed by the compiled-in tables.
func NewStatic() *Static { return &Static{} }

func (s *Static) Labels(_ context.Context, locale Locale) (Labels, error) {
	labels, ok := tables[locale]
	if !ok {
		return Labels{}, dErrors.Newf(dErrors.CodeUnavailable, "no label table for locale %q", locale)
	}
	return labels, nil
}

var tables = map[Locale]Labels{
	LocaleEnglish: {
		Months:      "%d months",
		Years:       "%d years",
		YearsMonths: "%d yrs %d mo",

		DoctorReview: "Doctor review ongoing",
		TasksPending: "%d tasks pending",
		InReview:     "In review",
		NonePending:  "None pending",

		Enrolled:        "Joined APPEAL",
		EnrolledDesc:    "Registration complete",
		HomeVisit:       "Home Visit",
		CheckUp:         "Check-up",
		ChecksPerformed: "%d checks performed",
		Achieved:        "Achieved: %s",
		AchievedDesc:    "Milestone completed at %d months",
		NeedsRetry:      "Needs Retry: %s",
		NeedsRetryDesc:  "Video quality issues. Please try again.",
		InReviewTitle:   "In Review: %s",
		AIAnalyzing:     "AI Analyzing...",
		DoctorReviewing: "Dr. Reviewing...",
		ReviewStatus:    "Status: %s",

		VerifyTitle:     "Verify '%s'",
		VerifyDesc:      "Is %s %s? Record a video for AI analysis.",
		StartRecording:  "Start Recording",
		AllCaughtUp:     "All Caught Up!",
		AllCaughtUpDesc: "%s is doing great. No pending actions.",
		ViewHistory:     "View History",
	},
	LocaleHindi: {
		Months:      "%d महीने",
		Years:       "%d साल",
		YearsMonths: "%d साल %d महीने",

		DoctorReview: "डॉक्टर की समीक्षा जारी है",
		TasksPending: "%d कार्य बाकी हैं",
		InReview:     "समीक्षा में",
		NonePending:  "कुछ बाकी नहीं",

		Enrolled:        "APPEAL में शामिल हुए",
		EnrolledDesc:    "पंजीकरण पूर्ण",
		HomeVisit:       "गृह भेंट",
		CheckUp:         "जांच",
		ChecksPerformed: "%d जांच की गईं",
		Achieved:        "प्राप्त किया: %s",
		AchievedDesc:    "%d महीने पर मील का पत्थर पूरा हुआ",
		NeedsRetry:      "पुनः प्रयास करें: %s",
		NeedsRetryDesc:  "वीडियो की गुणवत्ता ठीक नहीं है। कृपया फिर से प्रयास करें।",
		InReviewTitle:   "समीक्षा में: %s",
		AIAnalyzing:     "AI विश्लेषण कर रहा है...",
		DoctorReviewing: "डॉक्टर समीक्षा कर रहे हैं...",
		ReviewStatus:    "स्थिति: %s",

		VerifyTitle:     "'%s' सत्यापित करें",
		VerifyDesc:      "क्या %s %s? AI विश्लेषण के लिए एक वीडियो रिकॉर्ड करें।",
		StartRecording:  "रिकॉर्डिंग शुरू करें",
		AllCaughtUp:     "सब कुछ पूरा!",
		AllCaughtUpDesc: "%s बहुत अच्छा कर रहा है। कोई कार्य बाकी नहीं।",
		ViewHistory:     "इतिहास देखें",
	},
	LocaleKannada: {
		Months:      "%d ತಿಂಗಳು",
		Years:       "%d ವರ್ಷ",
		YearsMonths: "%d ವರ್ಷ %d ತಿಂಗಳು",

		DoctorReview: "ವೈದ್ಯರ ಪರಿಶೀಲನೆ ನಡೆಯುತ್ತಿದೆ",
		TasksPending: "%d ಕಾರ್ಯಗಳು ಬಾಕಿ ಇವೆ",
		InReview:     "ಪರಿಶೀಲನೆಯಲ್ಲಿ",
		NonePending:  "ಯಾವುದೂ ಬಾಕಿ ಇಲ್ಲ",

		Enrolled:        "APPEAL ಗೆ ಸೇರಿದರು",
		EnrolledDesc:    "ನೋಂದಣಿ ಪೂರ್ಣಗೊಂಡಿದೆ",
		HomeVisit:       "ಮನೆ ಭೇಟಿ",
		CheckUp:         "ತಪಾಸಣೆ",
		ChecksPerformed: "%d ತಪಾಸಣೆಗಳು ನಡೆದಿವೆ",
		Achieved:        "ಸಾಧಿಸಲಾಗಿದೆ: %s",
		AchievedDesc:    "%d ತಿಂಗಳಿಗೆ ಮೈಲಿಗಲ್ಲು ಪೂರ್ಣಗೊಂಡಿದೆ",
		NeedsRetry:      "ಮರುಪ್ರಯತ್ನ ಅಗತ್ಯ: %s",
		NeedsRetryDesc:  "ವೀಡಿಯೊ ಗುಣಮಟ್ಟ ಸರಿಯಿಲ್ಲ. ದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ.",
		InReviewTitle:   "ಪರಿಶೀಲನೆಯಲ್ಲಿ: %s",
		AIAnalyzing:     "AI ವಿಶ್ಲೇಷಿಸುತ್ತಿದೆ...",
		DoctorReviewing: "ವೈದ್ಯರು ಪರಿಶೀಲಿಸುತ್ತಿದ್ದಾರೆ...",
		ReviewStatus:    "ಸ್ಥಿತಿ: %s",

		VerifyTitle:     "'%s' ಪರಿಶೀಲಿಸಿ",
		VerifyDesc:      "%s %s ಮಾಡುತ್ತಿದೆಯೇ? AI ವಿಶ್ಲೇಷಣೆಗಾಗಿ ವೀಡಿಯೊ ರೆಕಾರ್ಡ್ ಮಾಡಿ.",
		StartRecording:  "ರೆಕಾರ್ಡಿಂಗ್ ಪ್ರಾರಂಭಿಸಿ",
		AllCaughtUp:     "ಎಲ್ಲವೂ ಪೂರ್ಣ!",
		AllCaughtUpDesc: "%s ಚೆನ್ನಾಗಿ ಬೆಳೆಯುತ್ತಿದೆ. ಯಾವುದೇ ಕಾರ್ಯ ಬಾಕಿ ಇಲ್ಲ.",
		ViewHistory:     "ಇತಿಹಾಸ ನೋಡಿ",
	},
}
