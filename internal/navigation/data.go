package navigation

import "net/url"

// RouteName identifies the page component a route activates.
type RouteName string

const (
	RouteHome     RouteName = "home"
	RouteBlog     RouteName = "blog"
	RouteBlogPost RouteName = "blog_post"
	RouteContact  RouteName = "contact"
	RouteAdmin    RouteName = "admin"
)

// Route maps a path pattern to a page, or redirects to another path.
// Pattern segments starting with ':' capture a parameter; the single
// pattern "**" matches anything.
type Route struct {
	Pattern    string
	Name       RouteName
	RedirectTo string
}

// DefaultRoutes is the site's route table. Unknown paths redirect home.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "", Name: RouteHome},
		{Pattern: "blog", Name: RouteBlog},
		{Pattern: "blog/:slug", Name: RouteBlogPost},
		{Pattern: "contact", Name: RouteContact},
		{Pattern: "admin", Name: RouteAdmin},
		{Pattern: "**", RedirectTo: ""},
	}
}

// StaticRoutes are the paths rendered ahead of time.
func StaticRoutes() []string {
	return []string{"/", "/contact", "/blog"}
}

// NavigationEnd is emitted once per completed navigation.
// URL is what was requested; URLAfterRedirects is where the router landed.
// Both are router URLs: path plus optional query.
type NavigationEnd struct {
	ID                int
	URL               string
	URLAfterRedirects string
}

// Match is the result of resolving a location against the route table.
type Match struct {
	Route    Route
	Params   map[string]string
	Location url.URL
}

func (m Match) Param(name string) string {
	return m.Params[name]
}
