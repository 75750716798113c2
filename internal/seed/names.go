package seed

// Game name components, adjective + noun.
var gameAdjectives = []string{
	"Crimson", "Forgotten", "Shattered", "Eternal", "Hollow",
	"Burning", "Silent", "Lost", "Golden", "Jade",
	"Obsidian", "Amber", "Silver", "Frozen", "Verdant",
	"Twilight", "Iron", "Sapphire", "Ashen", "Emerald",
}

var gameNouns = []string{
	"Vale", "Kingdom", "Throne", "Realm", "Keep",
	"Tower", "Coast", "Marsh", "Oasis", "Summit",
	"Grove", "Expanse", "Depths", "Citadel", "Sanctuary",
	"Dominion", "Frontier", "Wasteland", "Haven", "Abyss",
}

// Character first names, culturally diverse and fantasy-appropriate.
var firstNames = []string{
	"Rowan", "Elena", "Marcus", "Vera", "Theron", "Lyra",
	"Amara", "Kofi", "Zara", "Jabari", "Nia", "Kwame",
	"Kenji", "Mei", "Hiroshi", "Yuki", "Jin", "Sora",
	"Priya", "Arjun", "Kavya", "Ravi", "Anaya", "Dev",
	"Layla", "Nasir", "Farah", "Khalil", "Zahra", "Omar",
	"Mateo", "Lucia", "Diego", "Carmen", "Rafael", "Sofia",
	"Kaya", "Tala", "Aiyana", "Makoa", "Wren", "Sage",
}

var surnames = []string{
	"Blackwood", "Ironforge", "Stormborn", "Ashford", "Thornwick",
	"Okonkwo", "Mbeki", "Diallo", "Nkrumah", "Osei",
	"Tanaka", "Chen", "Sharma", "Nguyen", "Kim",
	"Al-Rashid", "Hakim", "Farouk", "Barzani", "Nazari",
	"Reyes", "Mendoza", "Castillo", "Vargas", "Delgado",
	"Whisperwind", "Nighthollow", "Sunweaver", "Dawnstrider", "Moonshadow",
}

// Player handles for generated owners.
var playerNames = []string{
	"sarah", "alex", "yuki", "priya", "amara",
	"diego", "layla", "kofi", "morgan", "mei",
	"ravi", "sofia", "kenji", "zara", "jordan",
}

var noteTitles = []string{
	"Session Zero Notes", "The Descent", "First Blood", "Crossroads",
	"The Gathering Storm", "Shadows Rising", "A New Dawn", "The Long Road",
}

var mapTitles = []string{
	"World Overview", "The Crag", "Harbor District", "Sunken Temple",
	"Border Marches", "The Undervault",
}
