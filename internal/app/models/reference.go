package models

// SubjectList is the transcript's fixed subject roster, in display order.
var SubjectList = []string{
	"কালিমা ও আসমা-উল হুসনা",
	"আরবী লেখা / আরবী শিক্ষা",
	"হাদীস শরীফ",
	"মাসায়িল",
	"হিফজুল কোরআন",
	"আদইয়ায়ে মাসনুন",
	"তাজবীদ ও মাখরাজ",
	"বাংলা",
	"গণিত",
	"ইংরেজী",
	"পরিবেশ পরিচিতি",
	"সমাজ",
	"বিজ্ঞান",
}

// ClassList enumerates the admissible classes.
var ClassList = []string{"নুরানী", "নাজেরা", "হেফজ", "Class-1", "Class-2", "Class-3", "Class-4", "Class-5"}

// BloodGroups enumerates the selectable blood groups.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}
