package ingestion

import (
	"net/url"
	"slices"
	"strings"
)

// Platform is a job board whose pages get dedicated selectors
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

type platformRules struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformRules{
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
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// genericContent is tried for unknown boards, most specific first
var genericContent = []string{
	".job-description", ".job-content", "#job-description", "#job-content",
	".posting-content", ".job-details", "[data-testid='job-description']",
	"main", "article", ".content", "#content",
}

// commonNoise is removed from every posting
var commonNoise = []string{
	"nav", "footer", "header", "form", "button",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
	"#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".voluntary-disclosure", ".legal-disclosure",
	".social-share", ".share-buttons", ".sidebar", ".ad", ".advertisement",
}

// DetectPlatform identifies the job board from a posting URL
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platforms {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

func rulesFor(platform Platform) (content, noise []string) {
	for _, p := range platforms {
		if p.platform == platform {
			return slices.Concat(p.content, genericContent), slices.Concat(p.noise, commonNoise)
		}
	}
	return genericContent, commonNoise
}
