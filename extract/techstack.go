package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Tag selectors shared by the tag-based signatures.
var (
	scriptSrcSel = cascadia.MustCompile("script[src]")
	linkHrefSel  = cascadia.MustCompile("link[href]")
	generatorSel = cascadia.MustCompile(`meta[name="generator"]`)
)

// Attribute patterns for the tag-based signatures.
var (
	reShopifyCDN = regexp.MustCompile(`cdn\.shopify\.com`)
	reReactSrc   = regexp.MustCompile(`react(\.production)?\.min\.js`)
	reVueSrc     = regexp.MustCompile(`vue(\.min)?\.js`)
	reAngularSrc = regexp.MustCompile(`angular(\.min)?\.js`)
	reJoomlaGen  = regexp.MustCompile(`(?i)joomla`)
)

// Text patterns. The page text handed to the signatures is already
// lower-cased, so these stay lowercase.
var (
	reWordPress = regexp.MustCompile(`wp-content|wordpress`)
	reShopify   = regexp.MustCompile(`shopify\.com`)
	reGA        = regexp.MustCompile(`google-analytics\.com/analytics\.js|gtag\.js`)
	reFBPixel   = regexp.MustCompile(`facebook\.com/tr`)
)

// signature pairs a technology name with one independent detection check.
type signature struct {
	name  string
	match func(root *html.Node, lowerText string) bool
}

// signatures is the fixed detection catalogue. Checks are independent and
// order-insensitive; a technology is reported only on a positive match.
var signatures = []signature{
	{"WordPress", func(_ *html.Node, text string) bool {
		return reWordPress.MatchString(text)
	}},
	{"Shopify", func(root *html.Node, text string) bool {
		return reShopify.MatchString(text) || tagAttrMatches(root, linkHrefSel, "href", reShopifyCDN)
	}},
	{"React", func(root *html.Node, _ string) bool {
		return tagAttrMatches(root, scriptSrcSel, "src", reReactSrc)
	}},
	{"Vue.js", func(root *html.Node, _ string) bool {
		return tagAttrMatches(root, scriptSrcSel, "src", reVueSrc)
	}},
	{"Angular", func(root *html.Node, _ string) bool {
		return tagAttrMatches(root, scriptSrcSel, "src", reAngularSrc)
	}},
	{"Joomla", func(root *html.Node, _ string) bool {
		return tagAttrMatches(root, generatorSel, "content", reJoomlaGen)
	}},
	{"Google Analytics", func(_ *html.Node, text string) bool {
		return reGA.MatchString(text)
	}},
	{"Facebook Pixel", func(_ *html.Node, text string) bool {
		return reFBPixel.MatchString(text)
	}},
}

// TechStack detects known CMS/framework/analytics footprints on the page.
// The result is the union of all matched signature names in catalogue
// order; absence of a signature means undetected, not absent.
func TechStack(doc *goquery.Document, lowerText string) []string {
	root := doc.Get(0)

	var stack []string
	for _, sig := range signatures {
		if sig.match(root, lowerText) {
			stack = append(stack, sig.name)
		}
	}
	return stack
}

// tagAttrMatches reports whether any element matched by sel has an attribute
// value matching re.
func tagAttrMatches(root *html.Node, sel cascadia.Selector, attr string, re *regexp.Regexp) bool {
	for _, node := range sel.MatchAll(root) {
		if re.MatchString(nodeAttr(node, attr)) {
			return true
		}
	}
	return false
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
