package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known job board.
type Platform string

// Known job boards.
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

// board describes where a job board keeps the posting text and which of its
// widgets pollute the extracted text.
type board struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", "[data-automation-id='similarJobs']"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "[class*='_description_']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
	{
		platform: PlatformSmartRecruiters,
		hosts:    []string{"smartrecruiters.com"},
		content:  []string{"[itemprop='description']", ".job-sections", "main"},
		noise:    []string{".job-apply", "[data-test='apply-button']"},
	},
}

// genericNoise is stripped on every board: application forms, EEO and
// self-identification blocks, sharing widgets and cookie notices.
var genericNoise = []string{
	"form", "#application-form", ".application-form", "[data-testid='application-form']",
	".eeo-statement", ".eeo-section", "[data-testid='eeo']", ".voluntary-disclosure", ".self-identification",
	".legal-disclosure", ".social-share", ".share-buttons", ".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

func lookupBoard(platform Platform) (board, bool) {
	for _, b := range boards {
		if b.platform == platform {
			return b, true
		}
	}
	return board{}, false
}

// DetectPlatform identifies the job board from a URL host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range boards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a job board, most
// specific first. Unknown boards get JobPostingSelectors.
func PlatformContentSelectors(platform Platform) []string {
	b, ok := lookupBoard(platform)
	if !ok {
		return JobPostingSelectors()
	}
	return append([]string(nil), b.content...)
}

// PlatformNoiseSelectors returns the elements to strip before extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), genericNoise...)
	if b, ok := lookupBoard(platform); ok {
		out = append(out, b.noise...)
	}
	return out
}
