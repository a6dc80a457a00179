package models

// StudentStatus tracks administrative approval of an admission.
type StudentStatus string

const (
	// StatusPending marks an online admission awaiting verification.
	StatusPending StudentStatus = "Pending"
	// StatusVerified is terminal; a verified record never goes back.
	StatusVerified StudentStatus = "Verified"
)

// Student is one admission/enrollment record. JSON tags match the
// original portal's persisted layout so existing backups stay readable.
type Student struct {
	ID         string        `json:"id"`     // opaque, unique, immutable
	Roll       int           `json:"roll"`   // unique, assigned by the store
	Reg        string        `json:"reg"`    // birth-registration number, uniqueness not enforced
	NameBN     string        `json:"nameBN"` // name in Bengali script
	NameEN     string        `json:"nameEN"`
	Class      string        `json:"class"`
	Branch     string        `json:"branch"`
	DOB        string        `json:"dob"`
	BloodGroup string        `json:"bloodGroup"`
	FName      string        `json:"fName"` // father's name
	FOcc       string        `json:"fOcc"`
	FPhone     string        `json:"fPhone"`
	MName      string        `json:"mName"` // mother's name
	MOcc       string        `json:"mOcc"`
	Addr       string        `json:"addr"`
	Village    string        `json:"village"`
	PostOffice string        `json:"postOffice"`
	Upazila    string        `json:"upazila"`
	District   string        `json:"district"`
	Photo      string        `json:"photo"` // base64 image payload, unchecked
	Status     StudentStatus `json:"status"`
	Session    string        `json:"session"` // YYYY-YY, immutable after creation
	Trx        string        `json:"trx,omitempty"`
	PayMethod  string        `json:"payMethod,omitempty"`
	Date       string        `json:"date"` // bn-BD localized admission date
}

// StudentDraft carries the partially-filled form state of a manual
// entry. Only non-nil fields overwrite an existing record; Photo is
// applied unconditionally (empty when no image was attached), matching
// the original entry form.
type StudentDraft struct {
	Roll   int
	NameBN string
	Class  string

	NameEN     *string
	Reg        *string
	Branch     *string
	DOB        *string
	BloodGroup *string
	FName      *string
	FOcc       *string
	FPhone     *string
	MName      *string
	MOcc       *string
	Addr       *string
	Village    *string
	PostOffice *string
	Upazila    *string
	District   *string
	Photo      string
}

// Apply merges the draft's supplied fields into an existing record.
// Identity and lifecycle fields (id, roll, status, session, date) are
// left untouched.
func (d *StudentDraft) Apply(s *Student) {
	s.NameBN = d.NameBN
	s.Class = d.Class
	s.Photo = d.Photo

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.NameEN, d.NameEN)
	set(&s.Reg, d.Reg)
	set(&s.Branch, d.Branch)
	set(&s.DOB, d.DOB)
	set(&s.BloodGroup, d.BloodGroup)
	set(&s.FName, d.FName)
	set(&s.FOcc, d.FOcc)
	set(&s.FPhone, d.FPhone)
	set(&s.MName, d.MName)
	set(&s.MOcc, d.MOcc)
	set(&s.Addr, d.Addr)
	set(&s.Village, d.Village)
	set(&s.PostOffice, d.PostOffice)
	set(&s.Upazila, d.Upazila)
	set(&s.District, d.District)
}
