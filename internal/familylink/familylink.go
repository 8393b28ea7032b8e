// Package familylink resolves kinship queries over a parsed GEDCOM
// document: parents, children, spouses, siblings, and arbitrary-degree
// relatives.
package familylink

import (
	"slices"

	"github.com/gedtools/gedserve/internal/gedcom"
)

// FamilyLink answers relationship queries using two indices built in one
// pass over the document's family records: parents maps a child to its
// father and mother records, unions maps a person to the family records in
// which they appear as a partner.
//
// The indices are a snapshot. Mutating the document afterwards does not
// update them; build a new FamilyLink instead.
//
// Methods come in pairs: the Refs variants return cross-reference
// identifiers and are the cheap path, their counterparts resolve each
// identifier to its record through the document. A reference whose record
// is missing from the document resolves to the absent line.
type FamilyLink struct {
	doc     *gedcom.Document
	parents map[string][2]*gedcom.Line
	unions  map[string][]*gedcom.Line
}

// New builds the indices for doc.
func New(doc *gedcom.Document) *FamilyLink {
	fl := &FamilyLink{
		doc:     doc,
		parents: make(map[string][2]*gedcom.Line),
		unions:  make(map[string][]*gedcom.Line),
	}
	for _, fam := range doc.Records() {
		if fam.Payload != "FAM" {
			continue
		}
		var children []string
		var father, mother *gedcom.Line
		for _, line := range fam.SubLines {
			if line.Payload == gedcom.Void {
				continue
			}
			switch line.Tag {
			case "CHIL":
				children = append(children, line.Payload)
			case "HUSB":
				father = doc.Record(line.Payload)
				fl.unions[line.Payload] = append(fl.unions[line.Payload], fam)
			case "WIFE":
				mother = doc.Record(line.Payload)
				fl.unions[line.Payload] = append(fl.unions[line.Payload], fam)
			}
		}
		// A child listed in several families keeps the last one's parents.
		for _, child := range children {
			fl.parents[child] = [2]*gedcom.Line{father, mother}
		}
	}
	return fl
}

// ParentFamilyRef returns the identifier of the family holding the
// person's parents, from the FAMC back-reference, or "" if none.
func (fl *FamilyLink) ParentFamilyRef(child *gedcom.Line) string {
	if !child.Exists() {
		return ""
	}
	for _, sub := range child.SubLines {
		if sub.Tag == "FAMC" {
			if sub.Payload == gedcom.Void {
				return ""
			}
			return sub.Payload
		}
	}
	return ""
}

// ParentFamily returns the family record holding the person's parents, or
// the absent line.
func (fl *FamilyLink) ParentFamily(child *gedcom.Line) *gedcom.Line {
	ref := fl.ParentFamilyRef(child)
	if ref == "" {
		return nil
	}
	return fl.doc.Record(ref)
}

// Parents returns the father and mother records of the person. Either may
// be the absent line.
func (fl *FamilyLink) Parents(indi string) (father, mother *gedcom.Line) {
	pair := fl.parents[indi]
	return pair[0], pair[1]
}

// Unions returns the family records in which the person is a partner.
func (fl *FamilyLink) Unions(indi string) []*gedcom.Line {
	return slices.Clone(fl.unions[indi])
}

// UnionsWith returns the family records shared by the two people as
// partners. Usually one, but remarriage between the same two people
// happens.
func (fl *FamilyLink) UnionsWith(indi1, indi2 string) []*gedcom.Line {
	first := fl.unions[indi1]
	var out []*gedcom.Line
	for _, fam := range fl.unions[indi2] {
		if slices.Contains(first, fam) {
			out = append(out, fam)
		}
	}
	return out
}

// ChildRefs returns the identifiers of the person's children across all
// their unions, in family order.
func (fl *FamilyLink) ChildRefs(parent string) []string {
	return childRefs(fl.unions[parent])
}

// Children returns the records of the person's children.
func (fl *FamilyLink) Children(parent string) []*gedcom.Line {
	return fl.resolve(fl.ChildRefs(parent))
}

// ChildRefsWith returns the identifiers of the couple's children.
func (fl *FamilyLink) ChildRefsWith(indi1, indi2 string) []string {
	return childRefs(fl.UnionsWith(indi1, indi2))
}

// ChildrenWith returns the records of the couple's children.
func (fl *FamilyLink) ChildrenWith(indi1, indi2 string) []*gedcom.Line {
	return fl.resolve(fl.ChildRefsWith(indi1, indi2))
}

// SpouseRefs returns the identifiers of the person's partners across all
// their unions.
func (fl *FamilyLink) SpouseRefs(indi string) []string {
	var out []string
	for _, fam := range fl.unions[indi] {
		for _, sub := range fam.SubLines {
			if sub.Tag != "HUSB" && sub.Tag != "WIFE" {
				continue
			}
			if sub.Payload != indi && sub.Payload != gedcom.Void {
				out = append(out, sub.Payload)
			}
		}
	}
	return out
}

// Spouses returns the records of the person's partners.
func (fl *FamilyLink) Spouses(indi string) []*gedcom.Line {
	return fl.resolve(fl.SpouseRefs(indi))
}

// SpouseInFamilyRef returns the identifier of the family's partner that is
// not the given person, or "" when the person is not a partner there or
// the other slot is empty.
func (fl *FamilyLink) SpouseInFamilyRef(indi string, fam *gedcom.Line) string {
	husband := fam.SubPayload("HUSB")
	wife := fam.SubPayload("WIFE")
	if indi == wife && husband != "" && husband != gedcom.Void {
		return husband
	}
	if indi == husband && wife != "" && wife != gedcom.Void {
		return wife
	}
	return ""
}

// SpouseInFamily returns the record of the family's other partner, or the
// absent line.
func (fl *FamilyLink) SpouseInFamily(indi string, fam *gedcom.Line) *gedcom.Line {
	ref := fl.SpouseInFamilyRef(indi, fam)
	if ref == "" {
		return nil
	}
	return fl.doc.Record(ref)
}

// SiblingRefs returns the identifiers of the person's siblings from their
// own parent family, the person excluded. Stepsiblings are not included.
func (fl *FamilyLink) SiblingRefs(indi string) []string {
	fam := fl.ParentFamily(fl.doc.Record(indi))
	var out []string
	for _, sub := range fam.SubAll("CHIL") {
		if sub.Payload != gedcom.Void && sub.Payload != indi {
			out = append(out, sub.Payload)
		}
	}
	return out
}

// Siblings returns the records of the person's siblings, stepsiblings
// excluded.
func (fl *FamilyLink) Siblings(indi string) []*gedcom.Line {
	return fl.resolve(fl.SiblingRefs(indi))
}

// StepsiblingRefs returns the identifiers of children from the other
// unions of either parent: the person's own parent family is skipped, so
// full siblings never appear.
func (fl *FamilyLink) StepsiblingRefs(indi string) []string {
	parentFam := fl.ParentFamilyRef(fl.doc.Record(indi))
	father, mother := fl.Parents(indi)
	var unions []*gedcom.Line
	if father.Exists() {
		unions = append(unions, fl.unions[father.Tag]...)
	}
	if mother.Exists() {
		unions = append(unions, fl.unions[mother.Tag]...)
	}
	var out []string
	for _, fam := range unions {
		if fam.Tag == parentFam {
			continue
		}
		for _, sub := range fam.SubAll("CHIL") {
			if sub.Payload != gedcom.Void {
				out = append(out, sub.Payload)
			}
		}
	}
	return out
}

// Stepsiblings returns the records of the person's stepsiblings.
func (fl *FamilyLink) Stepsiblings(indi string) []*gedcom.Line {
	return fl.resolve(fl.StepsiblingRefs(indi))
}

// AllSiblingRefs returns the identifiers of every child of either parent,
// the person excluded: siblings and stepsiblings together.
func (fl *FamilyLink) AllSiblingRefs(indi string) []string {
	father, mother := fl.Parents(indi)
	var unions []*gedcom.Line
	if father.Exists() {
		unions = append(unions, fl.unions[father.Tag]...)
	}
	if mother.Exists() {
		// A union shared by both parents is already in the list.
		for _, fam := range fl.unions[mother.Tag] {
			if !slices.Contains(unions, fam) {
				unions = append(unions, fam)
			}
		}
	}
	var out []string
	for _, fam := range unions {
		for _, sub := range fam.SubAll("CHIL") {
			if sub.Payload != gedcom.Void && sub.Payload != indi {
				out = append(out, sub.Payload)
			}
		}
	}
	return out
}

// AllSiblings returns the records of the person's siblings and
// stepsiblings.
func (fl *FamilyLink) AllSiblings(indi string) []*gedcom.Line {
	return fl.resolve(fl.AllSiblingRefs(indi))
}

func (fl *FamilyLink) resolve(refs []string) []*gedcom.Line {
	out := make([]*gedcom.Line, 0, len(refs))
	for _, ref := range refs {
		out = append(out, fl.doc.Record(ref))
	}
	return out
}

func childRefs(unions []*gedcom.Line) []string {
	var out []string
	for _, fam := range unions {
		for _, sub := range fam.SubAll("CHIL") {
			if sub.Payload != gedcom.Void {
				out = append(out, sub.Payload)
			}
		}
	}
	return out
}
