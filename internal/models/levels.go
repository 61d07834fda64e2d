package models

const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

const (
	WorkTypeRemote = "remote"
	WorkTypeHybrid = "hybrid"
	WorkTypeOnsite = "onsite"
)

const (
	NotifyInstant = "instant"
	NotifyDaily   = "daily"
	NotifyWeekly  = "weekly"
)

const (
	NotificationJobMatch          = "job_match"
	NotificationApplicationUpdate = "application_update"
	NotificationSystem            = "system"
)

var experienceLevels = map[string]bool{
	ExperienceEntry:     true,
	ExperienceMid:       true,
	ExperienceSenior:    true,
	ExperienceExecutive: true,
}

var workTypes = map[string]bool{
	WorkTypeRemote: true,
	WorkTypeHybrid: true,
	WorkTypeOnsite: true,
}

var notifyFrequencies = map[string]bool{
	NotifyInstant: true,
	NotifyDaily:   true,
	NotifyWeekly:  true,
}

func IsValidExperienceLevel(level string) bool {
	return experienceLevels[level]
}

func IsValidWorkType(workType string) bool {
	return workTypes[workType]
}

func IsValidNotifyFrequency(freq string) bool {
	return notifyFrequencies[freq]
}
