package crawl

// Queue is the crawl frontier. URLs are normalized on entry, so variants
// differing only in fragment, tracking parameters or a trailing slash are
// queued once.
type Queue struct {
	urls  []string
	seen  map[string]struct{}
	taken int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Add normalizes rawURL and enqueues it unless already seen. It reports
// whether the URL was new.
func (q *Queue) Add(rawURL string) bool {
	u := NormalizeURL(rawURL)
	if _, ok := q.seen[u]; ok {
		return false
	}
	q.seen[u] = struct{}{}
	q.urls = append(q.urls, u)
	return true
}

// Next pops the oldest pending URL; ok is false when none is left.
func (q *Queue) Next() (url string, ok bool) {
	if q.taken >= len(q.urls) {
		return "", false
	}
	url = q.urls[q.taken]
	q.taken++
	return url, true
}

// Taken returns how many URLs Next has handed out.
func (q *Queue) Taken() int {
	return q.taken
}

// URLs returns every URL ever added, in insertion order.
func (q *Queue) URLs() []string {
	return append([]string(nil), q.urls...)
}
