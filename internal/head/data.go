package head

// TagKey identifies a <meta> element by its identifying attribute.
// Description, robots and twitter:* use name=; og:* and article:* use property=.
type TagKey struct {
	Attr string
	Name string
}

func Name(name string) TagKey {
	return TagKey{Attr: "name", Name: name}
}

func Property(property string) TagKey {
	return TagKey{Attr: "property", Name: property}
}

func (k TagKey) String() string {
	return k.Attr + "=" + k.Name
}

const (
	jsonLDType    = "application/ld+json"
	schemaKeyAttr = "data-schema"
	canonicalRel  = "canonical"
	emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"
)

// CanonicalRel is the rel value of the canonical link.
const CanonicalRel = canonicalRel

// Script is a JSON-LD block found in the head. Key is empty for the primary
// slot and the data-schema value for secondary slots.
type Script struct {
	Key  string
	Body string
}

// pendingState is the keyed mapping accumulated between flushes. A nil value
// in a map means "remove".
type pendingState struct {
	title *string

	metas     map[TagKey]*string
	metaOrder []TagKey

	links     map[string]*string
	linkOrder []string

	primary    *string
	hasPrimary bool

	secondary      map[string]*string
	secondaryOrder []string
}

func newPendingState() pendingState {
	return pendingState{
		metas:     make(map[TagKey]*string),
		links:     make(map[string]*string),
		secondary: make(map[string]*string),
	}
}

func (p *pendingState) empty() bool {
	return p.title == nil && len(p.metaOrder) == 0 && len(p.linkOrder) == 0 &&
		!p.hasPrimary && len(p.secondaryOrder) == 0
}
