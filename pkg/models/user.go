package models

// User is the persisted record stored under the user's email.
// Password holds a one-way hash, never the plaintext.
type User struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password"`
	Alarms    []string `json:"userAlarms"`
}

// DisplayName returns "First Last"
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// HasAlarm reports whether label is already in the alarm list
func (u *User) HasAlarm(label string) bool {
	return u.alarmIndex(label) >= 0
}

// RemoveAlarm drops the first matching label and reports whether one was found
func (u *User) RemoveAlarm(label string) bool {
	i := u.alarmIndex(label)
	if i < 0 {
		return false
	}
	u.Alarms = append(u.Alarms[:i], u.Alarms[i+1:]...)
	return true
}

func (u *User) alarmIndex(label string) int {
	for i, a := range u.Alarms {
		if a == label {
			return i
		}
	}
	return -1
}

// ProfileUpdate carries the fields replaced by a profile update.
// Password must already be hashed.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Password  string
}
