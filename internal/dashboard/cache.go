package dashboard

const summaryKeyPrefix = "dashboard:summary:"

// CacheKey addresses one school's dashboard summary for one academic year.
// The payment-recorded consumer invalidates exactly this key.
func CacheKey(schoolID, academicYear string) string {
	return summaryKeyPrefix + schoolID + ":" + academicYear
}
