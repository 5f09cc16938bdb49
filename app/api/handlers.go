package api

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/chapter-web/app/cfg"
	"github.com/lysyi3m/chapter-web/app/content"
	"github.com/lysyi3m/chapter-web/app/listing"
	"github.com/lysyi3m/chapter-web/app/site"
)

const (
	feedFileName = "feed.xml"
	// metaDescriptionLength matches what search engines show.
	metaDescriptionLength = 160
	cardSummaryLength     = 180
)

func NewHandler(source ContentSource, sections *site.SectionCache, templates *Templates, c *cfg.Cfg) *Handler {
	return &Handler{
		content:   source,
		sections:  sections,
		generator: site.NewFeedGenerator(c.SiteName, c.SiteURL, c.Version),
		templates: templates,
		siteName:  c.SiteName,
		siteURL:   c.SiteURL,
		version:   c.Version,
	}
}

func (h *Handler) GetHome(c *gin.Context) {
	section, ok := h.sections.Home()
	if !ok {
		h.NotFound(c)
		return
	}

	h.renderListing(c, section, h.siteName+" - Home")
}

func (h *Handler) GetSection(c *gin.Context) {
	section, ok := h.sections.GetEnabledSection(c.Param("section"))
	if !ok {
		h.NotFound(c)
		return
	}

	h.renderListing(c, section, h.title(section.Title))
}

// GetPost serves /:section/:slug, including the section's feed.xml.
func (h *Handler) GetPost(c *gin.Context) {
	section, ok := h.sections.GetEnabledSection(c.Param("section"))
	if !ok {
		h.NotFound(c)
		return
	}

	slug := c.Param("slug")
	if slug == feedFileName {
		h.renderFeed(c, section)
		return
	}

	placeholder := false
	post, ok := h.content.PostBySlug(c.Request.Context(), slug)
	if !ok {
		post, ok = content.Placeholder(slug)
		placeholder = ok
	}
	if !ok {
		slog.Debug("Post not found", "section", section.Name, "slug", slug)
		h.NotFound(c)
		return
	}

	page := h.page(c, h.title(content.StripHTML(post.Title)), content.Summarize(post.Excerpt, metaDescriptionLength))
	if post.FeaturedImage != nil {
		page.Image = post.FeaturedImage.URL
	}

	category, _ := post.PrimaryCategory()

	h.templates.Render(c, http.StatusOK, "post", PostView{
		Page:            page,
		Post:            *post,
		Body:            content.AnchorHeadings(post.Content),
		Headings:        content.ExtractHeadings(post.Content),
		Date:            content.FormatDate(post.Date),
		ReadingTime:     content.ReadingTime(post.Content),
		Category:        category.Name,
		ParentTitle:     section.Title,
		ParentURL:       section.Path(),
		TOCRootMargin:   content.TOCRootMargin,
		TOCScrollOffset: content.TOCScrollOffset,
		Placeholder:     placeholder,
	})
}

func (h *Handler) GetSitemap(c *gin.Context) {
	slugs := h.content.AllSlugs(c.Request.Context())
	sitemap := site.Sitemap(h.siteURL, h.sections.GetEnabledSections(), slugs, time.Now().In(time.Local))

	c.Header("X-Sitemap-URLs", strconv.Itoa(1+len(h.sections.GetEnabledSections())+len(slugs)))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(sitemap))
}

func (h *Handler) APIListPosts(c *gin.Context) {
	values := c.Request.URL.Query()

	name := values.Get("section")
	var section *site.Section
	var ok bool
	if name == "" {
		section, ok = h.sections.Home()
	} else {
		section, ok = h.sections.GetEnabledSection(name)
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	posts, _ := h.sectionPosts(c.Request.Context(), section)
	result := paginate(posts, values)

	response := PostsResponse{
		Items:   result.visible,
		Total:   len(result.filtered),
		Visible: len(result.visible),
		HasMore: result.hasMore,
		Key:     result.pager.Key,
	}
	if result.hasMore {
		next := result.next
		next.Set("section", section.Name)
		response.Next = "/api/posts?" + next.Encode()
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) SetTheme(c *gin.Context) {
	h.togglePreference(c, themeCookie, ThemeLight, ThemeDark)
}

func (h *Handler) SetViewMode(c *gin.Context) {
	h.togglePreference(c, viewModeCookie, ViewGrid, ViewList)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":   time.Now().In(time.Local).Format(time.RFC3339),
		"version":     h.version,
		"sections":    h.sections.GetSectionCount(),
		"content_api": h.content.Configured(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.templates.Render(c, http.StatusNotFound, "error", ErrorView{
		Page:    h.page(c, h.title("Page Not Found"), ""),
		Heading: "Page Not Found",
		Message: "The page you are looking for does not exist or has been moved.",
		Action:  "Back to Home",
		Link:    "/",
	})
}

// Recover renders the error page for panics raised while handling a request.
func (h *Handler) Recover(c *gin.Context, recovered any) {
	slog.Error("Request panicked",
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
		"error", recovered)

	retry := c.Request.URL.RequestURI()
	if c.Request.Method != http.MethodGet {
		retry = "/"
	}

	h.templates.Render(c, http.StatusInternalServerError, "error", ErrorView{
		Page:    h.page(c, h.title("Something went wrong"), ""),
		Heading: "Something went wrong",
		Message: "An unexpected error occurred. Please try again.",
		Action:  "Try Again",
		Link:    retry,
	})
	c.Abort()
}

func (h *Handler) renderListing(c *gin.Context, section *site.Section, title string) {
	ctx := c.Request.Context()
	values := c.Request.URL.Query()

	posts, placeholder := h.sectionPosts(ctx, section)
	result := paginate(posts, values)

	view := ListingView{
		Page:            h.page(c, title, content.StripHTML(section.Description)),
		Section:         section,
		HeroTitle:       section.Title,
		HeroDescription: h.sectionDescription(ctx, section),
		State:           result.state,
		Facets:          listing.BuildFacets(posts),
		Cards:           cards(result.visible),
		Total:           len(result.filtered),
		Shown:           len(result.visible),
		HasMore:         result.hasMore,
		SearchDebounce:  listing.SearchDebounce.Milliseconds(),
		Placeholder:     placeholder,
		FeedURL:         section.FeedPath(),
	}

	if result.hasMore {
		view.NextURL = c.Request.URL.Path + "?" + result.next.Encode()
	}
	if len(result.filtered) == 0 {
		view.EmptyTitle, view.EmptyDetail = result.state.EmptyMessage()
	}
	if section.Hero == site.HeroCarousel {
		view.Carousel = carousel(posts)
	}

	h.templates.Render(c, http.StatusOK, "listing", view)
}

func (h *Handler) renderFeed(c *gin.Context, section *site.Section) {
	posts, _ := h.sectionPosts(c.Request.Context(), section)
	posts = listing.Apply(posts, listing.State{DateSort: listing.SortLatest})

	rss, err := h.generator.Run(section, posts)
	if err != nil {
		slog.Error("RSS generation error", "section", section.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(min(len(posts), site.FeedItemLimit)))
	c.Header("X-Feed-Name", section.Name)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(rss))
}

// sectionPosts fetches the section's posts, falling back to generated
// placeholders when the content API has nothing.
func (h *Handler) sectionPosts(ctx context.Context, section *site.Section) ([]content.Post, bool) {
	page := h.content.PostsByCategorySlugs(ctx, section.Categories, 1, section.Settings.PerPage)
	if len(page.Items) > 0 {
		return page.Items, false
	}

	slog.Debug("Using placeholder posts", "section", section.Name, "count", section.Settings.PlaceholderCount)
	return content.Placeholders(section.PlaceholderPrefix, section.Settings.PlaceholderCount), true
}

func (h *Handler) sectionDescription(ctx context.Context, section *site.Section) string {
	if section.Settings.UseCategoryDescription && len(section.Categories) > 0 {
		if category, ok := h.content.CategoryBySlug(ctx, section.Categories[0]); ok && category.Description != "" {
			return content.StripHTML(category.Description)
		}
	}
	return content.StripHTML(section.Description)
}

func (h *Handler) title(t string) string {
	return t + " | " + h.siteName
}

func (h *Handler) page(c *gin.Context, title, description string) Page {
	return Page{
		SiteName:    h.siteName,
		SiteURL:     h.siteURL,
		Title:       title,
		Description: description,
		Canonical:   h.siteURL + c.Request.URL.Path,
		Theme:       preference(c, themeCookie, ThemeLight, ThemeDark),
		ViewMode:    preference(c, viewModeCookie, ViewGrid, ViewList),
		CurrentPath: c.Request.URL.Path,
		Sections:    h.sections.GetEnabledSections(),
		RequestID:   c.GetString(requestIDKey),
		Year:        time.Now().Year(),
	}
}

// preference reads a two-valued cookie, falling back to the first value.
func preference(c *gin.Context, name, first, second string) string {
	if v, err := c.Cookie(name); err == nil && v == second {
		return second
	}
	return first
}

func (h *Handler) togglePreference(c *gin.Context, name, first, second string) {
	value := c.PostForm("value")
	if value != first && value != second {
		value = second
		if preference(c, name, first, second) == second {
			value = first
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int((365 * 24 * time.Hour).Seconds()), "/", "", false, false)
	c.Redirect(http.StatusSeeOther, backTo(c))
}

// backTo returns the local path the request came from, never another host.
func backTo(c *gin.Context) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/"
	}
	return cmp.Or(ref.RequestURI(), "/")
}

type paginated struct {
	state    listing.State
	pager    listing.Pager
	filtered []content.Post
	visible  []content.Post
	hasMore  bool
	next     url.Values
}

func paginate(posts []content.Post, values url.Values) paginated {
	state := listing.ParseQuery(values)
	pager := listing.ParsePager(values, state)
	filtered := listing.Apply(posts, state)

	return paginated{
		state:    state,
		pager:    pager,
		filtered: filtered,
		visible:  listing.Window(filtered, pager.Count(len(filtered))),
		hasMore:  pager.HasMore(len(filtered)),
		next:     pager.Next(state, len(filtered)),
	}
}

func cards(posts []content.Post) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		category, _ := p.PrimaryCategory()
		cards = append(cards, PostCard{
			Post:        p,
			URL:         p.URL(),
			Category:    category.Name,
			Summary:     content.Truncate(content.StripHTML(p.Excerpt), cardSummaryLength),
			Date:        content.FormatDate(p.Date),
			ReadingTime: content.ReadingTime(p.Content),
		})
	}
	return cards
}

func carousel(posts []content.Post) []HeroSlide {
	slides := make([]HeroSlide, 0, site.CarouselSize)
	for _, p := range listing.Window(posts, site.CarouselSize) {
		slide := HeroSlide{
			Title:   content.StripHTML(p.Title),
			Excerpt: content.StripHTML(p.Excerpt),
			URL:     p.URL(),
		}
		if p.FeaturedImage != nil {
			slide.Image = p.FeaturedImage.URL
		}
		slides = append(slides, slide)
	}
	return slides
}
