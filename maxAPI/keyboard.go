package maxAPI

import (
	"fmt"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"cmanagement/database"
)

const (
	btnDashboard  = "🏠 Tableau de bord"
	btnClasses    = "📚 Mes classes"
	btnCalendar   = "📅 Calendrier"
	btnRecordings = "🎙️ Enregistrements"
	btnReports    = "📋 Bulletins"
	btnStats      = "📊 Statistiques"
	btnSettings   = "⚙️ Paramètres"

	btnAdd        = "➕ Ajouter"
	btnSearch     = "🔍 Rechercher"
	btnBackToMenu = "← Menu principal"
	btnYes        = "Oui, supprimer"
	btnNo         = "Annuler"

	btnImportRoster  = "📥 Importer des élèves (CSV/XLSX)"
	btnImportClasses = "📥 Importer des classes (CSV)"

	btnProfile       = "👤 Profil"
	btnWeights       = "⚖️ Coefficients"
	btnScale         = "📏 Barème"
	btnExportClasses = "📤 Exporter les classes (CSV)"
	btnExportRoster  = "📤 Exporter les élèves (CSV)"

	payloadMenu       = "menu"
	payloadDashboard  = "dashboard"
	payloadClasses    = "classes"
	payloadCalendar   = "calendar"
	payloadRecordings = "recordings"
	payloadReports    = "reports"
	payloadStats      = "stats"
	payloadSettings   = "settings"

	payloadClassOpen = "class_%d"
	payloadAdd       = "add_%s"
	payloadSearch    = "search_%s"
	payloadDelete    = "del_%s_%d"
	payloadDelYes    = "delyes_%s"
	payloadDelNo     = "delno_%s"
	payloadFilter    = "flt_%s_%s"
	payloadDownload  = "dl_report_%d"

	payloadProfile       = "set_profile"
	payloadWeights       = "set_weights"
	payloadScale         = "set_scale"
	payloadScaleValue    = "scale_%s"
	payloadExportClasses = "export_classes"
	payloadExportRoster  = "export_roster"
	payloadImportRoster  = "import_roster"
	payloadImportClasses = "import_classes"
)

func GetMainMenuKeyboard(api *maxbot.Api) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	keyboard.AddRow().AddCallback(btnDashboard, schemes.DEFAULT, payloadDashboard)
	keyboard.AddRow().
		AddCallback(btnClasses, schemes.DEFAULT, payloadClasses).
		AddCallback(btnCalendar, schemes.DEFAULT, payloadCalendar)
	keyboard.AddRow().
		AddCallback(btnRecordings, schemes.DEFAULT, payloadRecordings).
		AddCallback(btnReports, schemes.DEFAULT, payloadReports)
	keyboard.AddRow().
		AddCallback(btnStats, schemes.DEFAULT, payloadStats).
		AddCallback(btnSettings, schemes.DEFAULT, payloadSettings)
	return keyboard
}

// GetDeleteConfirmKeyboard asks for the explicit confirmation every
// deletion goes through.
func GetDeleteConfirmKeyboard(api *maxbot.Api, kind string) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	keyboard.AddRow().
		AddCallback(btnYes, schemes.NEGATIVE, fmt.Sprintf(payloadDelYes, kind)).
		AddCallback(btnNo, schemes.DEFAULT, fmt.Sprintf(payloadDelNo, kind))
	return keyboard
}

func GetClassesKeyboard(api *maxbot.Api, classes []database.SchoolClass) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	for _, c := range classes {
		keyboard.AddRow().
			AddCallback(c.Name, schemes.DEFAULT, fmt.Sprintf(payloadClassOpen, c.ClassID)).
			AddCallback("🗑", schemes.NEGATIVE, fmt.Sprintf(payloadDelete, kindClass, c.ClassID))
	}
	keyboard.AddRow().
		AddCallback(btnAdd, schemes.DEFAULT, fmt.Sprintf(payloadAdd, kindClass)).
		AddCallback(btnSearch, schemes.DEFAULT, fmt.Sprintf(payloadSearch, kindClass))
	keyboard.AddRow().AddCallback(btnBackToMenu, schemes.DEFAULT, payloadMenu)
	return keyboard
}

// GetFilterKeyboard renders one row of filter chips plus the list footer.
func GetFilterKeyboard(api *maxbot.Api, kind string, filters []string) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	row := keyboard.AddRow()
	row.AddCallback("Tous", schemes.DEFAULT, fmt.Sprintf(payloadFilter, kind, "all"))
	for _, f := range filters {
		row.AddCallback(f, schemes.DEFAULT, fmt.Sprintf(payloadFilter, kind, f))
	}
	keyboard.AddRow().
		AddCallback(btnAdd, schemes.DEFAULT, fmt.Sprintf(payloadAdd, kind)).
		AddCallback(btnSearch, schemes.DEFAULT, fmt.Sprintf(payloadSearch, kind))
	keyboard.AddRow().AddCallback(btnBackToMenu, schemes.DEFAULT, payloadMenu)
	return keyboard
}

func GetSettingsKeyboard(api *maxbot.Api) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	keyboard.AddRow().
		AddCallback(btnProfile, schemes.DEFAULT, payloadProfile).
		AddCallback(btnWeights, schemes.DEFAULT, payloadWeights)
	keyboard.AddRow().AddCallback(btnScale, schemes.DEFAULT, payloadScale)
	keyboard.AddRow().AddCallback(btnExportClasses, schemes.DEFAULT, payloadExportClasses)
	keyboard.AddRow().AddCallback(btnImportClasses, schemes.DEFAULT, payloadImportClasses)
	keyboard.AddRow().AddCallback(btnExportRoster, schemes.DEFAULT, payloadExportRoster)
	keyboard.AddRow().AddCallback(btnBackToMenu, schemes.DEFAULT, payloadMenu)
	return keyboard
}

func GetScaleKeyboard(api *maxbot.Api) *maxbot.Keyboard {
	keyboard := api.Messages.NewKeyboardBuilder()
	keyboard.AddRow().
		AddCallback("Sur 20", schemes.DEFAULT, fmt.Sprintf(payloadScaleValue, "20")).
		AddCallback("Sur 100", schemes.DEFAULT, fmt.Sprintf(payloadScaleValue, "100")).
		AddCallback("Lettres", schemes.DEFAULT, fmt.Sprintf(payloadScaleValue, "letter"))
	keyboard.AddRow().AddCallback(btnBackToMenu, schemes.DEFAULT, payloadSettings)
	return keyboard
}
