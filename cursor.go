package keyset

// Payload is the decoded content of a keyset cursor token: the signature of
// the sort set the cursor was issued under, plus one value per sort key
// marking the row position the page continues from.
type Payload struct {
	Sig  string         `json:"s"`
	Keys map[string]any `json:"k"`
}

// Cursor selects where the requested page starts. At most one field may be
// set; a nil Cursor (or a zero Cursor) requests the first page.
type Cursor struct {
	// Next is a token from a previous result's NextPage or an edge cursor.
	Next *string

	// Prev is a token from a previous result's PrevPage. It walks the result
	// set backwards: every sort direction is inverted for the fetch and the
	// page is reversed before it is returned.
	Prev *string

	// Offset skips a fixed number of rows instead of resuming from a token.
	Offset *int
}

// NextCursor requests the page following the given token.
func NextCursor(token string) *Cursor {
	return &Cursor{Next: &token}
}

// PrevCursor requests the page preceding the given token.
func PrevCursor(token string) *Cursor {
	return &Cursor{Prev: &token}
}

// OffsetCursor requests the page starting at the given row offset.
func OffsetCursor(offset int) *Cursor {
	return &Cursor{Offset: &offset}
}

// CursorKind tags the decoded form of an incoming cursor.
type CursorKind int

const (
	// CursorFirst means no cursor was supplied: fetch the first page.
	CursorFirst CursorKind = iota

	// CursorNext resumes forward from a keyset token.
	CursorNext

	// CursorPrev resumes backward from a keyset token.
	CursorPrev

	// CursorOffset skips a fixed number of rows.
	CursorOffset
)

// payloadFrom validates that a decoded cursor value has the Payload shape.
// Cursor codecs return `any`, so the shape check happens here rather than in
// the codec.
func payloadFrom(v any) (Payload, error) {
	switch t := v.(type) {
	case Payload:
		return t, validatePayload(t)

	case map[string]any:
		sig, ok := t["s"].(string)
		if !ok {
			return Payload{}, invalidTokenf("cursor payload has no sort signature")
		}

		keys, ok := t["k"].(map[string]any)
		if !ok {
			return Payload{}, invalidTokenf("cursor payload has no key values")
		}

		p := Payload{Sig: sig, Keys: keys}
		return p, validatePayload(p)

	default:
		return Payload{}, invalidTokenf("cursor payload has unexpected shape %T", v)
	}
}

func validatePayload(p Payload) error {
	if len(p.Sig) != 8 {
		return invalidTokenf("cursor signature %q is malformed", p.Sig)
	}
	if len(p.Keys) == 0 {
		return invalidTokenf("cursor payload carries no key values")
	}

	return nil
}
