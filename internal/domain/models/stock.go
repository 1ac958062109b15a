package models

import (
	"sort"
	"strings"
	"time"
)

// Airtable column names. They must match the base exactly.
const (
	FieldEAN       = "EAN"
	FieldEtat      = "ETAT"
	FieldRayon     = "RAYON"
	FieldSousRayon = "sous rayon"
)

// StockEntry is one scanned book submitted by the clerk.
type StockEntry struct {
	EAN       string `json:"ean"`
	Rayon     string `json:"rayon"`
	Etat      string `json:"etat"`
	SousRayon string `json:"sous_rayon,omitempty"`
}

// Fields returns the record shape sent to the store. The sub-category column
// is only present when a value was provided.
func (e StockEntry) Fields() map[string]any {
	fields := map[string]any{
		FieldEAN:   e.EAN,
		FieldRayon: e.Rayon,
		FieldEtat:  e.Etat,
	}
	if e.SousRayon != "" {
		fields[FieldSousRayon] = e.SousRayon
	}
	return fields
}

// OptionSet lists the values offered by the entry form dropdowns.
type OptionSet struct {
	Rayons []string `json:"rayons"`
	Etats  []string `json:"etats"`
}

// JournalEntry is an accepted submission kept for daily recaps.
type JournalEntry struct {
	EAN       string    `bson:"ean" json:"ean"`
	Rayon     string    `bson:"rayon" json:"rayon"`
	SousRayon string    `bson:"sous_rayon,omitempty" json:"sous_rayon,omitempty"`
	Etat      string    `bson:"etat" json:"etat"`
	RecordID  string    `bson:"record_id" json:"record_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Condition codes in display order.
var etats = []string{"EC", "BE", "TB", "CN", "NE"}

var rayons = []string{
	"psychanalyse", "histoire", "Jeunesse", "psychologie", "Politinternatio", "art",
	"Sciencespol", "poesie", "Sociologie", "Objetscoll", "Cuisine", "Ethnologie",
	"Economie", "Philosophie", "musique", "Mer", "Quesaisje", "Poche",
	"Classiquespoche", "Esoterisme", "Essais", "Bouddhisme", "Religion", "Romans",
	"Bd", "photographie", "Dictionnaire", "critiqlitt", "Scolaire", "educ",
	"pochehistoire", "Poches", "pochessciences", "litterature", "Droit", "sf",
	"archeologie", "Regionalisme", "Medecine", "Animaux", "corresponda",
	"cinémaacteuramér", "style", "musiquechantgroupes", "Ecologiequotid",
	"bienetre", "Communisme", "sexualité", "politiqfra", "Sciences", "judaisme",
	"mondearabe", "romananglaisssol", "erotique", "Biographies", "Geographie",
	"collbouquins", "paysmonaco", "spiritualite", "greceantiq", "mythologie",
	"cinessais", "edition", "pleiade", "apprentissageanglais", "ange", "cinema",
	"folklore", "tablactusssol", "Architecture", "theatre", "revueslitt",
	"pedagogie", "tableactu", "medecinenaturelle", "savoirvivre", "paysafrique",
	"aviation", "vitrineregio", "justice", "linguistique", "jeandebonnot",
	"pochepolicier", "romanspolicierbroch", "theologie", "Pressejournalism",
	"biographie", "Sport", "bricolage", "Europe", "nationalisme", "Danse",
	"Techniques", "Espagne", "societe", "anthropologie", "latinpoche", "Jeux",
	"voyage", "femme", "adolescence", "pochepolitique", "autobiographie",
	"Communication", "antiquite", "Concours", "Guides", "algerie", "montagne",
	"lettres", "journauxsouvenirs", "asie", "entreprise", "maternité", "humour",
	"parentalite", "financepublique", "dietetique", "psychiatrie", "ameriquelatine",
	"Prostitution", "Acteurs", "grec", "puericulture", "vitrinefacecaisse",
	"Dictionnaires", "trains", "automoto", "francmaconnerie", "Brocante",
	"fantastique", "media", "Geopolitique", "Societessecretes",
	"francaispouretranger", "langue russe", "paris", "moyen orient", "fantasy",
	"revue philosophie", "pays", "templiers", "manga", "Viesquotidiennes",
	"Botanique", "Vin", "Graphologie", "Afriquedunord", "alchimie",
	"Bellesreliuresromanpop", "Objetscollectimbres", "languarabe",
	"editionoriginale", "methodenicois", "romanpopulaire", "VOalld", "astronomie",
	"philopolitique", "epistemologie", "englishbooks", "methodelangueital",
	"VOangloessais", "romanvoyage", "regionparis", "methodelangueespagnol",
	"champignon", "nature", "vousheros", "def", "Couple", "informatique",
	"Racisme", "biologie", "2dguerre", "DeGaulle", "classiqanglais",
	"sciencespolit", "chimie", "yoga", "methodelangue", "scolaireancien",
	"plantes", "peintresvallotton", "langnissart", "préhistoire",
	"relationsinternational",
}

func init() {
	sort.SliceStable(rayons, func(i, j int) bool {
		return strings.ToLower(rayons[i]) < strings.ToLower(rayons[j])
	})
}

// Etats returns a copy of the condition codes in display order.
func Etats() []string {
	return append([]string(nil), etats...)
}

// Rayons returns a copy of the shelf categories sorted case-insensitively.
func Rayons() []string {
	return append([]string(nil), rayons...)
}

// IsEtat reports whether code is one of the known condition codes.
func IsEtat(code string) bool {
	for _, e := range etats {
		if e == code {
			return true
		}
	}
	return false
}
