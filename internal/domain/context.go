package domain

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

type Mood string

const (
	MoodEnergetic   Mood = "energetic"
	MoodCalm        Mood = "calm"
	MoodHappy       Mood = "happy"
	MoodMelancholic Mood = "melancholic"
)

type Activity string

const (
	ActivityWorkout Activity = "workout"
	ActivityStudy   Activity = "study"
	ActivityParty   Activity = "party"
	ActivityRelax   Activity = "relax"
)

// RecommendationContext carries one request's inputs. Every field is
// optional except Limit; absent fields simply mute the strategies that
// need them.
type RecommendationContext struct {
	CurrentTrack *Track
	RecentTracks []int64
	Profile      *UserProfile
	TimeOfDay    TimeOfDay
	Mood         Mood
	Activity     Activity
	Limit        int
}
