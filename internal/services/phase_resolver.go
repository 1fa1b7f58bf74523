package services

import (
	"sort"
	"time"
)

type PhaseLabel string

const (
	PhasePeriod              PhaseLabel = "Period"
	PhaseOvulationDay        PhaseLabel = "Ovulation Day"
	PhaseFertileWindow       PhaseLabel = "Fertile Window"
	PhasePMS                 PhaseLabel = "PMS"
	PhasePredictedNextPeriod PhaseLabel = "Predicted Next Period"
	PhaseFollicular          PhaseLabel = "Follicular Phase"
	PhaseLuteal              PhaseLabel = "Luteal Phase"
	PhaseUnknown             PhaseLabel = "Unknown"
)

var phaseLabelByKind = map[WindowKind]PhaseLabel{
	WindowPeriod:     PhasePeriod,
	WindowOvulation:  PhaseOvulationDay,
	WindowFertile:    PhaseFertileWindow,
	WindowPMS:        PhasePMS,
	WindowNextPeriod: PhasePredictedNextPeriod,
}

// PhaseKey is the stable lowercase identifier of a label, used for translations.
func (label PhaseLabel) PhaseKey() string {
	switch label {
	case PhasePeriod:
		return "period"
	case PhaseOvulationDay:
		return "ovulation"
	case PhaseFertileWindow:
		return "fertile"
	case PhasePMS:
		return "pms"
	case PhasePredictedNextPeriod:
		return "next_period"
	case PhaseFollicular:
		return "follicular"
	case PhaseLuteal:
		return "luteal"
	default:
		return "unknown"
	}
}

// ResolvePhase classifies queryDate against windows. Windows are checked in
// precedence order; dates between windows fall back to the follicular or
// luteal phase, anything else is Unknown.
func ResolvePhase(windows []Window, queryDate time.Time) PhaseLabel {
	if len(windows) == 0 {
		return PhaseUnknown
	}

	day := DateAtLocation(queryDate, referenceLocation(windows, queryDate))

	ordered := make([]Window, len(windows))
	copy(ordered, windows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind.Precedence() < ordered[j].Kind.Precedence()
	})
	for _, window := range ordered {
		if window.Contains(day) {
			if label, ok := phaseLabelByKind[window.Kind]; ok {
				return label
			}
		}
	}

	period, hasPeriod := FindWindow(windows, WindowPeriod)
	fertile, hasFertile := FindWindow(windows, WindowFertile)
	if hasPeriod && hasFertile && day.After(period.End) && day.Before(fertile.Start) {
		return PhaseFollicular
	}

	pms, hasPMS := FindWindow(windows, WindowPMS)
	lutealStart, hasLutealStart := lutealPhaseStart(windows)
	if hasPMS && hasLutealStart && day.After(lutealStart) && day.Before(pms.Start) {
		return PhaseLuteal
	}

	return PhaseUnknown
}

func lutealPhaseStart(windows []Window) (time.Time, bool) {
	if ovulation, ok := FindWindow(windows, WindowOvulation); ok {
		return ovulation.End, true
	}
	if fertile, ok := FindWindow(windows, WindowFertile); ok {
		return fertile.End, true
	}
	return time.Time{}, false
}
