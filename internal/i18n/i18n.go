// internal/i18n/i18n.go
package i18n

import "fmt"

const (
	LangEnglish = "en"
	LangHindi   = "hi"

	DefaultLang = LangEnglish
)

// translations holds all locale message tables in code so the binary
// has no runtime file dependency.
var translations = map[string]map[string]string{
	LangEnglish: {
		KeyNotFound:          "Resource not found",
		KeyValidationInvalid: "Invalid %s data",

		KeyAuthRequired:           "Authentication required",
		KeyAuthInvalidToken:       "Invalid or expired token",
		KeyAuthInvalidCredentials: "Invalid email or password",
		KeyAuthRegisterSuccess:    "Registration successful",
		KeyAuthLoginSuccess:       "Login successful",
		KeyAdminAccessDenied:      "Admin access required",

		KeyRequestCreated:  "Part request created",
		KeyRequestUpdated:  "Part request updated",
		KeyRequestDeleted:  "Part request deleted",
		KeyRequestNotFound: "Part request not found",
		KeyRequestExpired:  "Part request has expired",
		KeyRequestInactive: "Part request is no longer active",

		KeyOfferSubmitted: "Offer submitted",
		KeyOfferDuplicate: "You have already submitted an offer for this request",

		KeyPartCreated:  "Spare part listed",
		KeyPartUpdated:  "Spare part updated",
		KeyPartDeleted:  "Spare part deleted",
		KeyPartNotFound: "Spare part not found",

		KeyFavoriteAdded:   "Added to favorites",
		KeyFavoriteRemoved: "Removed from favorites",

		KeyFileUploadFailed: "File upload failed",
		KeyFileUploaded:     "File uploaded",
	},
	LangHindi: {
		KeyNotFound:          "संसाधन नहीं मिला",
		KeyValidationInvalid: "अमान्य %s डेटा",

		KeyAuthRequired:           "प्रमाणीकरण आवश्यक है",
		KeyAuthInvalidToken:       "अमान्य या समाप्त टोकन",
		KeyAuthInvalidCredentials: "अमान्य ईमेल या पासवर्ड",
		KeyAuthRegisterSuccess:    "पंजीकरण सफल",
		KeyAuthLoginSuccess:       "लॉगिन सफल",
		KeyAdminAccessDenied:      "व्यवस्थापक पहुंच आवश्यक है",

		KeyRequestCreated:  "पार्ट अनुरोध बनाया गया",
		KeyRequestUpdated:  "पार्ट अनुरोध अपडेट किया गया",
		KeyRequestDeleted:  "पार्ट अनुरोध हटाया गया",
		KeyRequestNotFound: "पार्ट अनुरोध नहीं मिला",
		KeyRequestExpired:  "पार्ट अनुरोध समाप्त हो गया है",
		KeyRequestInactive: "पार्ट अनुरोध अब सक्रिय नहीं है",

		KeyOfferSubmitted: "प्रस्ताव भेजा गया",
		KeyOfferDuplicate: "आपने इस अनुरोध के लिए पहले ही प्रस्ताव भेज दिया है",

		KeyPartCreated:  "स्पेयर पार्ट सूचीबद्ध किया गया",
		KeyPartUpdated:  "स्पेयर पार्ट अपडेट किया गया",
		KeyPartDeleted:  "स्पेयर पार्ट हटाया गया",
		KeyPartNotFound: "स्पेयर पार्ट नहीं मिला",

		KeyFavoriteAdded:   "पसंदीदा में जोड़ा गया",
		KeyFavoriteRemoved: "पसंदीदा से हटाया गया",

		KeyFileUploadFailed: "फ़ाइल अपलोड विफल",
		KeyFileUploaded:     "फ़ाइल अपलोड की गई",
	},
}

// T returns the translated message for the given key in the given
// language, falling back to English, then to the key itself.
func T(lang, key string, args ...interface{}) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLang]
	}
	msg, ok := table[key]
	if !ok {
		msg, ok = translations[DefaultLang][key]
		if !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// IsSupported reports whether the language code has a translation table.
func IsSupported(lang string) bool {
	_, ok := translations[lang]
	return ok
}
