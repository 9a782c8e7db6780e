package hook

// Entry lifecycle hooks
const (
	HookEntryBeforeSave     = "entry.before_save"
	HookEntryAfterSave      = "entry.after_save"
	HookEntryAfterCreate    = "entry.after_create"
	HookEntryAfterPublish   = "entry.after_publish"
	HookEntryAfterUnpublish = "entry.after_unpublish"
	HookEntryAfterArchive   = "entry.after_archive"
	HookEntryAfterRestore   = "entry.after_restore"
	HookEntryAfterDelete    = "entry.after_delete"
)

// Scheduled action hooks
const (
	HookScheduleCreated   = "schedule.created"
	HookScheduleCancelled = "schedule.cancelled"
	HookScheduleFired     = "schedule.fired"
)

// User hooks
const (
	HookUserAfterLogin = "user.after_login"
)
