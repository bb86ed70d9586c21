package storage

// RenderedPage is one prerendered route ready to be persisted.
type RenderedPage struct {
	routePath string
	content   []byte
}

func NewRenderedPage(routePath string, content []byte) RenderedPage {
	return RenderedPage{
		routePath: routePath,
		content:   content,
	}
}

func (p RenderedPage) RoutePath() string {
	return p.routePath
}

func (p RenderedPage) Content() []byte {
	return p.content
}

// Persistence

type WriteResult struct {
	routePath   string
	path        string
	contentHash string
}

func NewWriteResult(
	routePath string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		routePath:   routePath,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) RoutePath() string {
	return w.routePath
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
