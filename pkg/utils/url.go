package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HostFromURL returns the lowercased host of rawURL without a leading "www.".
func HostFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// RegistrableDomain returns the eTLD+1 of rawURL ("news.acme.co.uk" -> "acme.co.uk").
func RegistrableDomain(rawURL string) string {
	host := HostFromURL(rawURL)
	if host == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}

// DomainLabel returns the registrable label of rawURL ("acme.co.uk" -> "acme").
func DomainLabel(rawURL string) string {
	domain := RegistrableDomain(rawURL)
	if domain == "" {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return strings.TrimSuffix(strings.TrimSuffix(domain, suffix), ".")
}

// HostMatches reports whether host equals domain or is a subdomain of it.
func HostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
