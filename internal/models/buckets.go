package models

// Bucket names used by the persistent key-value store. Each value is an
// opaque encrypted blob; the names themselves are stored in the clear.
const (
	BucketUser      = "user"
	BucketPeriod    = "period_data"
	BucketNotes     = "notes"
	BucketIntimacy  = "sex_data"
	BucketMedical   = "gynecologist_data"
	BucketPregnancy = "pregnancy_data"
	BucketMood      = "mood_data"
)

func AllBuckets() []string {
	return []string{
		BucketUser,
		BucketPeriod,
		BucketNotes,
		BucketIntimacy,
		BucketMedical,
		BucketPregnancy,
		BucketMood,
	}
}
