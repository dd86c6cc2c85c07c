package types

// OutcomeKind tags a FetchOutcome.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeEmpty   OutcomeKind = "empty"
	OutcomeFailure OutcomeKind = "failure"
)

// FetchOutcome is the single result of one pipeline run. Recipes is only set
// for OutcomeSuccess; Reason and Err only for OutcomeFailure.
type FetchOutcome struct {
	Kind    OutcomeKind
	Term    string
	Recipes []RecipeDetail
	Reason  string
	Err     error
}

func Success(term string, recipes []RecipeDetail) FetchOutcome {
	return FetchOutcome{Kind: OutcomeSuccess, Term: term, Recipes: recipes}
}

func Empty(term string) FetchOutcome {
	return FetchOutcome{Kind: OutcomeEmpty, Term: term}
}

func Failure(term string, err error) FetchOutcome {
	return FetchOutcome{Kind: OutcomeFailure, Term: term, Reason: err.Error(), Err: err}
}
