package artist

// trackedArtists is the curated roster, in matching order.
var trackedArtists = []string{
	"Akon", "Amy Winehouse", "Andrea Bocelli", "Audioslave", "Beastie Boys",
	"Bee Gees", "Billy Idol", "Black Eyed Peas", "Bob Marley", "Bob Seger",
	"Bon Jovi", "Boyz II Men", "Carpenters", "Cat Stevens", "Chris Cornell",
	"Coldplay", "Common", "D'Angelo", "Def Leppard", "DMX",
	"Donna Summer", "Drake", "Ed Sheeran", "Elton John", "Elvis Costello",
	"Eminem", "Erykah Badu", "Fall Out Boy", "Frank Sinatra", "Frank Zappa",
	"Glen Campbell", "Godsmack", "Guns N' Roses", "Heart", "Janet Jackson",
	"Jeremih", "Jimmy Eat World", "Jodeci", "John Lennon", "John Mellencamp",
	"Johnny Cash", "Juvenile", "Kenny Rogers", "Keyshia Cole", "Kiss",
	"Lenny Kravitz", "Lionel Richie", "Little Big Town", "LL Cool J",
	"Mariah Carey", "Marvin Gaye", "Mary J. Blige", "Neil Diamond", "Nelly",
	"Nelly Furtado", "Nirvana", "OneRepublic", "Paul McCartney", "Peggy Lee",
	"Peter Frampton", "Queens of the Stone Age", "Ringo Starr", "Roger Hodgson",
	"Rush", "Sammy Davis Jr.", "Shania Twain", "Smashing Pumpkins", "Sonic Youth",
	"Soundgarden", "Spice Girls", "Sting", "Supertramp", "Taylor Swift",
	"The Beach Boys", "The Beatles", "The Black Crowes", "The Cranberries",
	"The Game", "The Rolling Stones", "The Who", "Toby Keith", "Tom Petty",
	"Trisha Yearwood", "U2", "Weezer",
}

// shortNames lists tracked names that collide with everyday words.
var shortNames = map[string]bool{
	"Heart":    true,
	"Kiss":     true,
	"Rush":     true,
	"Sting":    true,
	"Common":   true,
	"U2":       true,
	"DMX":      true,
	"Nelly":    true,
	"The Game": true,
	"Drake":    true,
}

// DefaultRoster returns the curated roster of tracked artists.
func DefaultRoster() *Roster {
	entries := make([]Entry, 0, len(trackedArtists))
	for _, name := range trackedArtists {
		entries = append(entries, Entry{Name: name, Short: shortNames[name]})
	}
	return NewRoster(entries)
}
