package focus

import "fmt"

const focusScriptTemplate = `set targetTitle to "%[1]s"
set matched to false

tell application "System Events"
	if not (exists application process "%[2]s") then
		return "NOT_RUNNING"
	end if

	tell application process "%[2]s"
		repeat with w in windows
			set winName to ""
			try
				set winName to name of w
			end try

			if winName is targetTitle then
				set matched to true
				try
					set frontmost to true
				end try
				try
					set value of attribute "AXMain" of w to true
				end try
				try
					perform action "AXRaise" of w
				end try
				exit repeat
			end if
		end repeat
	end tell
end tell

if matched then
	tell application "%[2]s" to activate
	return "FOCUSED"
end if

return "NOT_FOUND"`

const frontWindowScriptTemplate = `tell application "System Events"
	if not (exists application process "%[1]s") then
		return ""
	end if

	tell application process "%[1]s"
		repeat with w in windows
			try
				if value of attribute "AXMain" of w is true then
					return name of w
				end if
			end try
		end repeat

		if (count of windows) > 0 then
			try
				return name of window 1
			end try
		end if
	end tell
end tell

return ""`

// FocusScript returns the search-and-focus script for title in app.
func FocusScript(app, title string) string {
	return fmt.Sprintf(focusScriptTemplate, EscapeAppleScript(title), EscapeAppleScript(app))
}

// FrontWindowScript returns the script that prints the focused window title of app.
func FrontWindowScript(app string) string {
	return fmt.Sprintf(frontWindowScriptTemplate, EscapeAppleScript(app))
}
