package domain

// Severity labels derived from clustering model output.
const (
	SeverityMild         = "Mild"
	SeverityModerate     = "Moderate"
	SeveritySevere       = "Severe"
	SeverityCatastrophic = "Catastrophic"
	SeverityUnknown      = "Unknown"
)

// SeverityLabel maps a cluster id to its severity label. Ids outside the
// trained 0–3 range map to Unknown rather than failing, so a retrained
// clustering model with extra clusters degrades visibly instead of erroring.
func SeverityLabel(cluster int) string {
	switch cluster {
	case 0:
		return SeverityMild
	case 1:
		return SeverityModerate
	case 2:
		return SeveritySevere
	case 3:
		return SeverityCatastrophic
	default:
		return SeverityUnknown
	}
}
