package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
)

// maxFormBytes bounds admin form bodies, image uploads included.
const maxFormBytes = 2 << 20

// optString returns a pointer to the trimmed value when the field was submitted.
func optString(form url.Values, name string) *string {
	vs, ok := form[name]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := strings.TrimSpace(vs[0])
	return &v
}

// optBool reads a checkbox paired with a hidden "false" input, so an
// unchecked box still submits a value. The last value wins.
func optBool(form url.Values, name string) *bool {
	vs, ok := form[name]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[len(vs)-1] == "true" || vs[len(vs)-1] == "on"
	return &v
}

func boolValue(form url.Values, name string) bool {
	if b := optBool(form, name); b != nil {
		return *b
	}
	return false
}

func trimmed(form url.Values, name string) string {
	return strings.TrimSpace(form.Get(name))
}

// imageUpload is an optional multipart image field stored as a data URI.
type imageUpload struct {
	field  string
	limit  int
	encode func(contentType string, data []byte) (string, error)
}

var (
	logoUpload      = imageUpload{field: "logoFile", limit: business.MaxLogoImageBytes, encode: business.EncodeLogo}
	postImageUpload = imageUpload{field: "imageFile", limit: blogpost.MaxImageBytes, encode: blogpost.EncodeImage}
)

// read encodes the attached file as a data URI. It returns "" when no
// file was attached.
func (u imageUpload) read(r *http.Request) (string, error) {
	file, header, err := r.FormFile(u.field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u.field, err)
	}
	defer file.Close()
	return u.encodeFile(file, header)
}

func (u imageUpload) encodeFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	// One byte over the limit is enough for encode to reject it.
	data, err := io.ReadAll(io.LimitReader(file, int64(u.limit)+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u.field, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return u.encode(contentType, data)
}

func businessFromForm(form url.Values, uploadedLogo string) business.Business {
	b := business.Business{
		Name:        trimmed(form, "name"),
		Logo:        trimmed(form, "logo"),
		Category:    trimmed(form, "category"),
		Description: trimmed(form, "description"),
		IsNew:       boolValue(form, "isNew"),
	}
	if uploadedLogo != "" {
		b.Logo = uploadedLogo
	}
	return b
}

func businessPatchFromForm(form url.Values, uploadedLogo string) business.Patch {
	patch := business.Patch{
		Name:        optString(form, "name"),
		Logo:        optString(form, "logo"),
		Category:    optString(form, "category"),
		Description: optString(form, "description"),
		IsNew:       optBool(form, "isNew"),
	}
	if uploadedLogo != "" {
		patch.Logo = &uploadedLogo
	} else if patch.Logo != nil && *patch.Logo == "" {
		// A blank logo field keeps the current logo.
		patch.Logo = nil
	}
	return patch
}

// postFromForm builds a new post. A blank date means today; an uploaded
// image replaces the image URL.
func postFromForm(form url.Values, now time.Time, uploadedImage string) (blogpost.BlogPost, error) {
	p := blogpost.BlogPost{
		Title:    trimmed(form, "title"),
		Excerpt:  trimmed(form, "excerpt"),
		Content:  strings.TrimSpace(form.Get("content")),
		Author:   trimmed(form, "author"),
		Category: trimmed(form, "category"),
		ImageURL: trimmed(form, "imageUrl"),
	}
	if uploadedImage != "" {
		p.ImageURL = uploadedImage
	}
	raw := trimmed(form, "date")
	if raw == "" {
		p.Date = now.UTC().Truncate(24 * time.Hour)
		return p, nil
	}
	date, err := blogpost.ParseDate(raw)
	if err != nil {
		return blogpost.BlogPost{}, err
	}
	p.Date = date
	return p, nil
}

func postPatchFromForm(form url.Values, uploadedImage string) (blogpost.Patch, error) {
	patch := blogpost.Patch{
		Title:    optString(form, "title"),
		Excerpt:  optString(form, "excerpt"),
		Content:  optString(form, "content"),
		Author:   optString(form, "author"),
		Category: optString(form, "category"),
		ImageURL: optString(form, "imageUrl"),
	}
	if uploadedImage != "" {
		patch.ImageURL = &uploadedImage
	} else if patch.ImageURL != nil && *patch.ImageURL == "" && form.Get("removeImage") != "true" {
		// A blank image field keeps the current image unless removal is asked for.
		patch.ImageURL = nil
	}
	if raw := optString(form, "date"); raw != nil {
		date, err := blogpost.ParseDate(*raw)
		if err != nil {
			return blogpost.Patch{}, err
		}
		patch.Date = &date
	}
	return patch, nil
}

func programPatchFromForm(form url.Values) program.Patch {
	patch := program.Patch{
		Name:         optString(form, "name"),
		Description:  optString(form, "description"),
		PrimaryColor: optString(form, "primaryColor"),
	}
	if vs, ok := form["accentColors"]; ok {
		patch.AccentColors = append([]string{}, vs...)
	}
	if text := optString(form, "features"); text != nil {
		patch.Features = program.SplitFeatures(*text)
	}
	return patch
}

func registrationFromForm(form url.Values) registration.Registration {
	r := registration.Registration{
		FullName:            form.Get("fullName"),
		PhoneNumber:         form.Get("phoneNumber"),
		Country:             form.Get("country"),
		Industry:            form.Get("industry"),
		BusinessIdea:        form.Get("businessIdea"),
		OpenToCollaboration: form.Get("openToCollaboration"),
		BornAgain:           form.Get("bornAgain"),
		Available8Weeks:     form.Get("available8Weeks"),
		TimePreference:      form.Get("timePreference"),
		DaysPreference:      append([]string{}, form["daysPreference"]...),
		PaymentMethod:       form.Get("paymentMethod"),
		PaymentProof:        form.Get("paymentProof"),
	}
	r.Normalize()
	return r
}

func contactMessageFromForm(form url.Values) contact.Message {
	return contact.Message{
		Name:    trimmed(form, "name"),
		Email:   trimmed(form, "email"),
		Message: strings.TrimSpace(form.Get("message")),
	}
}

func contactInfoFromForm(form url.Values) settings.ContactInfo {
	return settings.ContactInfo{
		Phone:    trimmed(form, "phone"),
		Email:    trimmed(form, "email"),
		WhatsApp: trimmed(form, "whatsapp"),
		Location: trimmed(form, "location"),
	}
}

func socialLinksFromForm(form url.Values) settings.SocialMediaLinks {
	return settings.SocialMediaLinks{
		Facebook:  trimmed(form, "facebook"),
		Instagram: trimmed(form, "instagram"),
		Twitter:   trimmed(form, "twitter"),
		LinkedIn:  trimmed(form, "linkedin"),
	}
}
