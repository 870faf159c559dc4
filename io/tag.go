package io

import (
	"strings"
)

//Tag represent field tag
type Tag struct {
	Column        string
	Autoincrement bool
	PrimaryKey    bool
	Transient     bool
}

//ParseTag parses tag i.e. `sqlx:"name=Id,autoincrement"`
func ParseTag(tagString string) *Tag {
	tag := &Tag{}
	if tagString == "-" {
		tag.Transient = true
		return tag
	}
	if tagString == "" {
		return tag
	}
	for i, element := range strings.Split(tagString, ",") {
		nv := strings.Split(element, "=")
		switch len(nv) {
		case 2:
			switch strings.ToLower(strings.TrimSpace(nv[0])) {
			case "name":
				tag.Column = strings.TrimSpace(nv[1])
			case "primarykey":
				tag.PrimaryKey = strings.TrimSpace(nv[1]) == "true"
			case "autoincrement":
				tag.Autoincrement = strings.TrimSpace(nv[1]) != "false"
			case "generator":
				tag.Autoincrement = strings.TrimSpace(nv[1]) == "autoincrement"
			}
		case 1:
			element = strings.TrimSpace(element)
			switch strings.ToLower(element) {
			case "autoincrement":
				tag.Autoincrement = true
			case "primarykey":
				tag.PrimaryKey = true
			default:
				if i == 0 {
					tag.Column = element
				}
			}
		}
	}
	tag.PrimaryKey = tag.PrimaryKey || tag.Autoincrement
	return tag
}
