package constants

// Panel round 2 (track evaluasi paralel), inklusif.
const (
	PanelMin = 1
	PanelMax = 6
)

func IsValidPanel(p int) bool {
	return p >= PanelMin && p <= PanelMax
}
