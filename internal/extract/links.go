package extract

import (
	"net/url"
	"strings"

	"github.com/user/mina-service/internal/entity"
	"github.com/user/mina-service/pkg/utils"
)

// Generated links are templates and are never fetched.
func (e *Engine) links(rec *entity.CompanyRecord, sourceURL string) {
	slug := utils.Slugify(rec.Name)
	rec.CompanyLinkedIn = "https://www.linkedin.com/company/" + slug + "/"
	rec.GlassdoorLink = "https://www.glassdoor.com/Search/results.htm?keyword=" + url.QueryEscape(rec.Name)

	if !e.isPublisher(sourceURL) {
		if domain := utils.RegistrableDomain(sourceURL); domain != "" {
			rec.CompanyWebsite = "https://" + domain
			return
		}
	}
	if compact := strings.ReplaceAll(slug, "-", ""); compact != "" {
		rec.CompanyWebsite = "https://" + compact + ".com"
	}
}
