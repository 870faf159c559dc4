package merge

import "fmt"

//State represents merge execution state
type State int

const (
	StateIdle = State(iota)
	StateValidated
	StateStagingBuilt
	StateIndexesDisabled
	StateMerging
	StateIndexesRebuilt
	StateIdentitySynced
	StateDone
	StateFailed
)

var stateNames = []string{"Idle", "Validated", "StagingBuilt", "IndexesDisabled", "Merging", "IndexesRebuilt", "IdentitySynced", "Done", "Failed"}

func (s State) String() string {
	if int(s) < len(stateNames) && s >= 0 {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
