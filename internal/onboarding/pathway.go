package onboarding

import "intake/internal/enquiry/models"

// Pathway is the regulatory track letter a firm follows through onboarding,
// derived solely from the declared activity type.
type Pathway string

const (
	PathwayA Pathway = "A"
	PathwayB Pathway = "B"
	PathwayC Pathway = "C"
	PathwayD Pathway = "D"
	PathwayE Pathway = "E"
)

// PathwayForActivity maps an activity type to its pathway letter.
func PathwayForActivity(activity models.ActivityType) (Pathway, bool) {
	switch activity {
	case models.ActivityFinancialServices:
		return PathwayA, true
	case models.ActivityDNFBP:
		return PathwayB, true
	case models.ActivityCryptoToken:
		return PathwayC, true
	case models.ActivityRegisteredAuditor:
		return PathwayD, true
	case models.ActivityCryptoTokenRecognition:
		return PathwayE, true
	default:
		return "", false
	}
}
