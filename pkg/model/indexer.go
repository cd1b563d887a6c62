package model

// indexer maps (meet, start) pairs to SAT variables and back
type indexer interface {
	Index(meet, start int) int64
	Attributes(variable int64) (meet, start int)
}

type indexerImplementation struct {
	times int
}

func newIndexer(times int) indexer {
	return &indexerImplementation{times: times}
}

// Variables start at 1 since 0 terminates DIMACS clauses
func (indexer *indexerImplementation) Index(meet, start int) int64 {
	return int64(meet*indexer.times+start) + 1
}

func (indexer *indexerImplementation) Attributes(variable int64) (meet, start int) {
	variable--
	return int(variable) / indexer.times, int(variable) % indexer.times
}
