/*
Package types defines the data structures shared by the client layers.

# Wire Contract

The request and response types mirror the backend command payloads field
for field:
  - GenerationRequest: {mode, dob, lifespan, months, theme, width, height}
  - PreviewResponse: {title, subtitle, total_weeks, elapsed_weeks, remaining_weeks, image_base64}
  - ConfigState: {dob, lifespan_years, theme, screen_width, screen_height, default_mode, next_months, schedule_installed}
  - SaveConfigArgs: {dob, lifespan, theme, width, height, defaultMode, months}

# Optional Fields

Optional[T] is a tagged Some/None value. None is serialized as JSON null,
which the backend reads as "use the persisted default". The client never
fills in defaults for optional request fields itself.

# Enumerations

Mode and Theme are string enums. ParseMode and ParseTheme accept the same
aliases the backend accepts (year_end, soft-dark, terminal_green, ...).
*/
package types
