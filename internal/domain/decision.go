package domain

// Branch is the outcome of comparing the current scene count with the stored one.
type Branch string

const (
	BranchNotify    Branch = "notify"
	BranchSkip      Branch = "skip"
	BranchReconcile Branch = "reconcile"
)

// Decision - результат сравнения текущего и предыдущего количества сцен
type Decision struct {
	Previous   int    `json:"previous"`
	Current    int    `json:"current"`
	Delta      int    `json:"delta"`
	Branch     Branch `json:"branch"`
	Reconciled bool   `json:"reconciled"`
}

// Compare has no side effects, so calling it repeatedly never changes stored state.
func Compare(previous, current int) Decision {
	d := Decision{
		Previous: previous,
		Current:  current,
		Delta:    current - previous,
	}

	switch {
	case d.Delta > 0:
		d.Branch = BranchNotify
	case d.Delta == 0:
		d.Branch = BranchSkip
	default:
		d.Branch = BranchReconcile
	}

	return d
}
