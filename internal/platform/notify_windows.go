//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const toastManager = "[Windows.UI.Notifications.ToastNotificationManager]"

// Notify shows a toast by driving the WinRT notification API from PowerShell.
func Notify(title, body string, opts Options) error {
	cmd := exec.Command("powershell.exe", "-NoProfile", "-Command", toastScript(title, body, opts))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("powershell toast: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func toastScript(title, body string, opts Options) string {
	icon := strings.TrimSpace(opts.IconPath)
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	lines := []string{
		toastManager + ", Windows.UI.Notifications, ContentType=Windows Runtime] > $null",
		fmt.Sprintf("$t = %s::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s)", toastManager, kind),
		`$text = $t.GetElementsByTagName("text")`,
		fmt.Sprintf("$text.Item(0).AppendChild($t.CreateTextNode(%s)) > $null", psQuote(title)),
		fmt.Sprintf("$text.Item(1).AppendChild($t.CreateTextNode(%s)) > $null", psQuote(body)),
	}
	if icon != "" {
		lines = append(lines, fmt.Sprintf(`$t.GetElementsByTagName("image").Item(0).SetAttribute("src", %s)`, psQuote(icon)))
	}
	lines = append(lines,
		"$toast = [Windows.UI.Notifications.ToastNotification]::new($t)",
		fmt.Sprintf("$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d)", int(opts.timeout().Seconds())),
		fmt.Sprintf("%s::CreateToastNotifier(%s).Show($toast)", toastManager, psQuote(opts.appName())),
	)
	return strings.Join(lines, "; ")
}

// psQuote produces a single quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
