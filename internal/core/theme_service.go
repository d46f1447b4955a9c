package core

import (
	"softshell.com/assistant-service/internal/store"
)

const themeSettingKey = "theme"

// ThemeService persists the dark-mode preference under a named settings key.
// When the key is unset, the configured default applies. The preference is an
// explicit value behind a setter, not ambient state.
type ThemeService struct {
	dbStore      *store.SQLiteStore
	defaultTheme string
}

func NewThemeService(db *store.SQLiteStore, defaultTheme string) *ThemeService {
	return &ThemeService{dbStore: db, defaultTheme: defaultTheme}
}

func (s *ThemeService) DarkMode() (bool, error) {
	value, err := s.dbStore.GetSetting(themeSettingKey)
	if err != nil {
		return false, err
	}
	if value == "" {
		value = s.defaultTheme
	}
	return value == "dark", nil
}

func (s *ThemeService) SetDarkMode(dark bool) error {
	value := "light"
	if dark {
		value = "dark"
	}
	return s.dbStore.SetSetting(themeSettingKey, value)
}
