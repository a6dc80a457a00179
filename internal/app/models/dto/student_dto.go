package dto

import "github.com/noriyal/madrasa-portal/internal/app/models"

// AdmissionRequest carries a complete online admission submission.
// The required tags mirror the admission form's starred fields plus
// the payment step.
type AdmissionRequest struct {
	NameBN     string `json:"nameBN" binding:"required"`
	NameEN     string `json:"nameEN" binding:"required"`
	Class      string `json:"class" binding:"required"`
	Photo      string `json:"photo" binding:"required"`
	Reg        string `json:"reg" binding:"required"`
	FName      string `json:"fName" binding:"required"`
	MName      string `json:"mName" binding:"required"`
	PayMethod  string `json:"payMethod" binding:"required"`
	Trx        string `json:"trx" binding:"required"`
	Branch     string `json:"branch"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"bloodGroup"`
	FOcc       string `json:"fOcc"`
	FPhone     string `json:"fPhone"`
	MOcc       string `json:"mOcc"`
	Addr       string `json:"addr"`
	Village    string `json:"village"`
	PostOffice string `json:"postOffice"`
	Upazila    string `json:"upazila"`
	District   string `json:"district"`
}

// AdmissionResponse reports the assigned roll back to the applicant.
type AdmissionResponse struct {
	Roll    int    `json:"roll" example:"10001"`
	Session string `json:"session" example:"2026-27"`
	Status  string `json:"status" example:"Pending"`
}

// ManualEntryRequest is the operator's create-or-update form. Roll,
// Bengali name and class are mandatory; every other field is optional
// and, when absent, leaves the stored value alone on update.
type ManualEntryRequest struct {
	Roll   int    `json:"roll" binding:"required"`
	NameBN string `json:"nameBN" binding:"required"`
	Class  string `json:"class" binding:"required"`

	NameEN     *string `json:"nameEN"`
	Reg        *string `json:"reg"`
	Branch     *string `json:"branch"`
	DOB        *string `json:"dob"`
	BloodGroup *string `json:"bloodGroup"`
	FName      *string `json:"fName"`
	FOcc       *string `json:"fOcc"`
	FPhone     *string `json:"fPhone"`
	MName      *string `json:"mName"`
	MOcc       *string `json:"mOcc"`
	Addr       *string `json:"addr"`
	Village    *string `json:"village"`
	PostOffice *string `json:"postOffice"`
	Upazila    *string `json:"upazila"`
	District   *string `json:"district"`
	Photo      *string `json:"photo"`
}

// ToDraft converts the request into the store's draft shape.
func (r *ManualEntryRequest) ToDraft() models.StudentDraft {
	draft := models.StudentDraft{
		Roll:       r.Roll,
		NameBN:     r.NameBN,
		Class:      r.Class,
		NameEN:     r.NameEN,
		Reg:        r.Reg,
		Branch:     r.Branch,
		DOB:        r.DOB,
		BloodGroup: r.BloodGroup,
		FName:      r.FName,
		FOcc:       r.FOcc,
		FPhone:     r.FPhone,
		MName:      r.MName,
		MOcc:       r.MOcc,
		Addr:       r.Addr,
		Village:    r.Village,
		PostOffice: r.PostOffice,
		Upazila:    r.Upazila,
		District:   r.District,
	}
	if r.Photo != nil {
		draft.Photo = *r.Photo
	}
	return draft
}

// TrackingResponse is the public view of an application's state.
type TrackingResponse struct {
	Roll   int    `json:"roll" example:"10001"`
	NameBN string `json:"nameBN"`
	Class  string `json:"class"`
	Status string `json:"status" example:"Pending"`
}
