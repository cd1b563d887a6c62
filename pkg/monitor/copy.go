package monitor

// CopyContext maps every original object reached while cloning a solution to its clone.
// The monitor graph is not a tree (many monitors share one event or resource), so each
// object is registered before its references are followed, which makes diamonds and
// cycles clone exactly once.
type CopyContext struct {
	copies map[any]any
}

func NewCopyContext() *CopyContext {
	return &CopyContext{copies: make(map[any]any)}
}

// Copy returns the clone of orig, allocating it and running fill on first sight only
func Copy[T any](ctx *CopyContext, orig *T, fill func(dst, src *T)) *T {
	if orig == nil {
		return nil
	}
	if dup, ok := ctx.copies[orig]; ok {
		return dup.(*T)
	}
	dup := new(T)
	ctx.copies[orig] = dup
	fill(dup, orig)
	return dup
}

// Len is the number of objects cloned so far
func (ctx *CopyContext) Len() int {
	return len(ctx.copies)
}
