package handler

import (
	"net/mail"
	"net/url"
	"strings"

	"folio-go/internal/util"
)

// ValidEmail reports whether s parses as a single RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidURL reports whether s is an absolute http(s) URL.
// Empty strings are accepted; URL fields are optional.
func ValidURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// requireField adds a "required" error to errs when value is blank.
func requireField(errs map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "is required"
	}
}

// ValidateSlugFormat validates only the slug format.
// Returns an error message string, or empty string if valid.
func ValidateSlugFormat(slug string) string {
	if slug == "" {
		return "Slug is required"
	}
	if !util.IsValidSlug(slug) {
		return "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	return ""
}

// validateContactForm validates a public contact submission.
func validateContactForm(name, email, subject, message string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "name", name)
	requireField(errs, "subject", subject)
	requireField(errs, "message", message)
	if strings.TrimSpace(email) == "" {
		errs["email"] = "is required"
	} else if !ValidEmail(email) {
		errs["email"] = "must be a valid email address"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateInterestForm validates a project interest submission.
// Phone is optional.
func validateInterestForm(name, email, message string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "name", name)
	requireField(errs, "message", message)
	if strings.TrimSpace(email) == "" {
		errs["email"] = "is required"
	} else if !ValidEmail(email) {
		errs["email"] = "must be a valid email address"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateProjectForm validates project create/update input.
func validateProjectForm(title, description, image, liveLink string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "title", title)
	requireField(errs, "description", description)
	if !ValidURL(image) {
		errs["image"] = "must be an absolute http(s) URL"
	}
	if !ValidURL(liveLink) {
		errs["live_link"] = "must be an absolute http(s) URL"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateSkillForm validates skill create/update input.
func validateSkillForm(name string, percentage int) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "name", name)
	if percentage < 0 || percentage > 100 {
		errs["percentage"] = "must be between 0 and 100"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateSocialLinkForm validates social link create/update input.
func validateSocialLinkForm(platform, linkURL string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "platform", platform)
	if strings.TrimSpace(linkURL) == "" {
		errs["url"] = "is required"
	} else if !ValidURL(linkURL) {
		errs["url"] = "must be an absolute http(s) URL"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateBlogPostForm validates blog post create/update input.
// Slug may be blank on create; it is derived from the title.
func validateBlogPostForm(title, slug, content, coverImage string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "title", title)
	requireField(errs, "content", content)
	if slug != "" && !util.IsValidSlug(slug) {
		errs["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	if !ValidURL(coverImage) {
		errs["cover_image"] = "must be an absolute http(s) URL"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateWebsiteInfoForm validates an upsert of site text.
func validateWebsiteInfoForm(section, key string) map[string]string {
	errs := make(map[string]string)
	requireField(errs, "section", section)
	requireField(errs, "key", key)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
