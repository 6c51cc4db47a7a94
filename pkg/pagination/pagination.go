package pagination

const (
	// DefaultLimit deliberately large: the estimate list endpoint has always
	// returned everything, so the default page covers any realistic account.
	DefaultLimit = 200
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 500
)

// Params holds limit/offset pagination inputs from controllers.
type Params struct {
	Limit  int
	Offset int
}

// Normalize enforces the default and maximum limits and a non-negative offset.
func (p Params) Normalize() Params {
	out := p
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}
