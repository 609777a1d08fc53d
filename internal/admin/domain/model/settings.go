package model

// Settings is the single object-typed document. Missing fields fall back to
// the zero value on load; Reset persists an empty document.
type Settings struct {
	SiteName            string               `json:"siteName,omitempty"`
	SiteURL             string               `json:"siteUrl,omitempty"`
	AdminEmail          string               `json:"adminEmail,omitempty"`
	ItemsPerPage        int                  `json:"itemsPerPage,omitempty"`
	Currency            string               `json:"currency,omitempty"`
	Timezone            string               `json:"timezone,omitempty"`
	MaintenanceMode     bool                 `json:"maintenanceMode,omitempty"`
	RegistrationEnabled bool                 `json:"registrationEnabled,omitempty"`
	Notifications       SettingsNotifications `json:"notifications,omitempty"`
	Theme               SettingsTheme         `json:"theme,omitempty"`
}

// SettingsNotifications holds the notification channel toggles.
type SettingsNotifications struct {
	Email bool `json:"email,omitempty"`
	Push  bool `json:"push,omitempty"`
	SMS   bool `json:"sms,omitempty"`
}

// SettingsTheme holds the display theme preferences.
type SettingsTheme struct {
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	DarkMode       bool   `json:"darkMode,omitempty"`
}
