package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sethvargo/go-githubactions"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/app"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
)

const defaultLang = "en"

func main() {
	action := githubactions.New()

	translations := loadTranslations(action)

	root, err := app.New(app.Options{
		Action:       action,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		Translations: translations,
		Workflow:     os.Getenv("GITHUB_ACTIONS") == "true",
		RunnerDebug:  os.Getenv("RUNNER_DEBUG") == "1",
	})
	if err != nil {
		action.Fatalf("error initializing the cli: %v", err)
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		action.Fatalf("%v", err)
	}
}

// loadTranslations picks the language of help and usage text. Issue comments
// use the language from the loaded configuration. Falls back to English when
// the input names a locale that is not bundled.
func loadTranslations(action *githubactions.Action) *i18n.Translations {
	lang := action.GetInput("language")
	if lang == "" {
		lang = defaultLang
	}

	translations, err := i18n.NewTranslations(lang)
	if err == nil {
		return translations
	}

	action.Warningf("language %q not supported, using %s", lang, defaultLang)
	translations, err = i18n.NewTranslations(defaultLang)
	if err != nil {
		action.Fatalf("error loading translations: %v", err)
	}
	return translations
}
