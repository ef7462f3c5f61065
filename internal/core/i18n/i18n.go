// Package i18n holds the user-facing messages of the service in English and
// Bulgarian and picks one from the request's Accept-Language header.
package i18n

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
)

type Key string

const (
	KeyInvalidPayload  Key = "invalid_payload"
	KeyInvalidInput    Key = "invalid_input"
	KeyNotPositive     Key = "not_positive"
	KeyNotFinite       Key = "not_finite"
	KeyOutOfRange      Key = "out_of_range"
	KeyInternal        Key = "internal"
	KeyUnauthorized    Key = "unauthorized"
	KeyTooManyRequests Key = "too_many_requests"
	KeyCredentials     Key = "credentials_required"
	KeyBadLogin        Key = "bad_login"
	KeyUserExists      Key = "user_exists"
	KeyShortPassword   Key = "short_password"
	KeyFileRequired    Key = "file_required"
	KeyInvalidFile     Key = "invalid_file"
	KeyEmptySheet      Key = "empty_sheet"
	KeyNoItems         Key = "no_items"
	KeyTooManyItems    Key = "too_many_items"
	KeyNoDiameter      Key = "no_diameter"
)

var supported = []language.Tag{language.English, language.Bulgarian}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.English: {
		KeyInvalidPayload:  "Invalid request payload",
		KeyInvalidInput:    "Invalid input",
		KeyNotPositive:     "%s must be greater than zero",
		KeyNotFinite:       "%s must be a finite number",
		KeyOutOfRange:      "%s must be between %g and %g",
		KeyInternal:        "internal server error",
		KeyUnauthorized:    "Unauthorized",
		KeyTooManyRequests: "Too Many Requests. Try again later.",
		KeyCredentials:     "Login and password required",
		KeyBadLogin:        "Invalid login or password",
		KeyUserExists:      "User already exists",
		KeyShortPassword:   "Password must be at least 6 characters",
		KeyFileRequired:    "File required",
		KeyInvalidFile:     "Invalid file",
		KeyEmptySheet:      "Empty sheet",
		KeyNoItems:         "No items",
		KeyTooManyItems:    "Too many items (max %d)",
		KeyNoDiameter:      "No standard diameter satisfies the limits",
	},
	language.Bulgarian: {
		KeyInvalidPayload:  "Невалидна заявка",
		KeyInvalidInput:    "Невалидни входни данни",
		KeyNotPositive:     "%s трябва да е по-голямо от нула",
		KeyNotFinite:       "%s трябва да е крайно число",
		KeyOutOfRange:      "%s трябва да е между %g и %g",
		KeyInternal:        "вътрешна грешка на сървъра",
		KeyUnauthorized:    "Неоторизиран достъп",
		KeyTooManyRequests: "Твърде много заявки. Опитайте по-късно.",
		KeyCredentials:     "Необходими са потребителско име и парола",
		KeyBadLogin:        "Грешно потребителско име или парола",
		KeyUserExists:      "Потребителят вече съществува",
		KeyShortPassword:   "Паролата трябва да е поне 6 символа",
		KeyFileRequired:    "Необходим е файл",
		KeyInvalidFile:     "Невалиден файл",
		KeyEmptySheet:      "Празен лист",
		KeyNoItems:         "Няма елементи",
		KeyTooManyItems:    "Твърде много елементи (макс. %d)",
		KeyNoDiameter:      "Нито един стандартен диаметър не отговаря на ограниченията",
	},
}

var fieldLabels = map[language.Tag]map[string]string{
	language.English: {
		"flow_m3_h":          "Flow Q [m³/h]",
		"retention_time_s":   "Retention time t [s]",
		"diameter_mm":        "Inner diameter D [mm]",
		"roughness_mm":       "Roughness ε [mm]",
		"density_kg_m3":      "Density ρ [kg/m³]",
		"viscosity_mpa_s":    "Dynamic viscosity μ [mPa·s]",
		"straight_segment_m": "Straight segment length [m]",
		"elbow_k_factor":     "90° elbow coefficient K",
		"max_dp_kpa":         "Allowed pressure drop [kPa]",
		"max_straights":      "Maximum number of straight passes",
		"velocity":           "Velocity v [m/s]",
		"length_m":           "Pipe length L [m]",
		"re":                 "Reynolds number Re",
		"dp_total_pa":        "Total pressure drop [Pa]",
	},
	language.Bulgarian: {
		"flow_m3_h":          "Дебит Q [m³/h]",
		"retention_time_s":   "Целева задръжка t [s]",
		"diameter_mm":        "Вътрешен диаметър D [mm]",
		"roughness_mm":       "Грапавост ε [mm]",
		"density_kg_m3":      "Плътност ρ [kg/m³]",
		"viscosity_mpa_s":    "Динамичен вискозитет μ [mPa·s]",
		"straight_segment_m": "Дължина на права секция [m]",
		"elbow_k_factor":     "Коефициент за коляно 90° K",
		"max_dp_kpa":         "Допустим пад на налягане [kPa]",
		"max_straights":      "Максимален брой прави секции",
		"velocity":           "Скорост v [m/s]",
		"length_m":           "Дължина на тръбата L [m]",
		"re":                 "Число на Рейнолдс Re",
		"dp_total_pa":        "Общ пад на налягане [Pa]",
	},
}

// FromRequest returns English or Bulgarian.
func FromRequest(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := matcher.Match(tags...)
	return normalize(tag)
}

func normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	if base.String() == "bg" {
		return language.Bulgarian
	}
	return language.English
}

func T(tag language.Tag, key Key, args ...any) string {
	msg, ok := messages[normalize(tag)][key]
	if !ok {
		msg = messages[language.English][key]
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Field returns the display label of an input field, or the raw name.
func Field(tag language.Tag, name string) string {
	if label, ok := fieldLabels[normalize(tag)][name]; ok {
		return label
	}
	return name
}
