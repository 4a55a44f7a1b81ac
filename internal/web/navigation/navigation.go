// Package navigation provides the sidebar and breadcrumb state of a page.
package navigation

// Section names used for the sidebar highlight.
const (
	SectionDashboard = "dashboard"
	SectionProjects  = "projects"
	SectionAnalytics = "analytics"
	SectionMessages  = "messages"
	SectionAdmin     = "admin"
	SectionHelp      = "help"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// SidebarItem is one link of the sidebar.
type SidebarItem struct {
	Title   string
	Icon    string // lucide icon name
	Href    string
	Section string
}

// Profile is the account block above the sidebar links.
type Profile struct {
	Name         string
	Email        string
	Icon         string
	SettingsIcon string
	SettingsHref string
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Sidebar returns the main sidebar links in display order.
func Sidebar() []SidebarItem {
	return []SidebarItem{
		{Title: "Dashboard", Icon: "layout-dashboard", Href: "/dashboard", Section: SectionDashboard},
		{Title: "Roles", Icon: "shield", Href: "/admin/role", Section: SectionAdmin},
		{Title: "Projects", Icon: "square-library", Href: "/#", Section: SectionProjects},
		{Title: "Analytics", Icon: "bar-chart-4", Href: "/#", Section: SectionAnalytics},
		{Title: "Messages", Icon: "mail", Href: "/#", Section: SectionMessages},
	}
}

// SidebarFooter returns the links pinned to the bottom of the sidebar.
func SidebarFooter() []SidebarItem {
	return []SidebarItem{
		{Title: "Help & Support", Icon: "life-buoy", Href: "/#", Section: SectionHelp},
	}
}

// SidebarProfile returns the account block shown at the top of the sidebar.
func SidebarProfile() Profile {
	return Profile{
		Name:         "My account",
		Email:        "user@reflex.dev",
		Icon:         "user",
		SettingsIcon: "settings",
		SettingsHref: "/#",
	}
}
