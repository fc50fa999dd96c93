package catalog

import "github.com/dtroode/quicksnatch-server/internal/model"

// DefaultLevels returns the built-in level table.
func DefaultLevels() []model.Level {
	return []model.Level{
		{
			Number:      1,
			Title:       "Hidden in Kanishk Plain Sight",
			Description: `A secret is hidden in plain sight, though not immediately obvious. Can you find the hidden file within this directory and reveal its contents?

Hint: Sometimes what you can't see is just as important as what you can see.`,
			CurlCommand: "curl -s https://raw.githubusercontent.com/nst-sdc/cli_ctf/refs/heads/main/level1.sh | bash",
			Flag:        "flag{quick_basics}",
		},
		{
			Number:      2,
			Title:       "The Hidden Path",
			Description: `A flag is tucked away, hidden from a simple list of files. It's said that a special directory hides the key. Can you navigate your way through and find what lies within and reveal the flag?

Hint: Some directories prefer to stay out of sight, but they can't hide from the right command.`,
			CurlCommand: "curl -s https://raw.githubusercontent.com/nst-sdc/cli_ctf/refs/heads/main/level2.sh | bash",
			Flag:        "flag{hidden_path}",
		},
		{
			Number:      3,
			Title:       "Following the Links",
			Description: `A complex path leads to the flag. The flag itself is hidden in a file, and its path includes a symbolic link. Your job is to navigate through the file structure, follow the link and then obtain the flag.

Hint: Not all paths are what they seem. Some are just pointers to the real destination.`,
			CurlCommand: "curl -s https://raw.githubusercontent.com/nst-sdc/cli_ctf/refs/heads/main/level3.sh | bash",
			Flag:        "flag{follow_the_link}",
		},
		{
			Number:      4,
			Title:       "Permission Granted",
			Description: `A direct path is needed, but you must use special permissions to read the content. You have to read the contents of the script to understand how to access the flag.

Hint: Sometimes you need the right permissions to access what you seek. The script holds the key to gaining access.`,
			CurlCommand: "curl -s https://raw.githubusercontent.com/nst-sdc/cli_ctf/refs/heads/main/level4.sh | bash",
			Flag:        "flag{permission_granted}",
		},
		{
			Number:      5,
			Title:       "Decode the Message",
			Description: `A message has been encoded, and the key is available within the directory. You must use command line tools to decode the message. Explore the directory, find the message and decode it.

Hint: The message may look like gibberish, but with the right decoding tool, its true meaning will be revealed.`,
			CurlCommand: "curl -s https://raw.githubusercontent.com/nst-sdc/cli_ctf/refs/heads/main/level5.sh | bash",
			Flag:        "flag{decoded_message}",
		},
	}
}

// DefaultHints returns the built-in location hint pool.
func DefaultHints() []model.Hint {
	return []model.Hint{
		{
			Title:  "The Silent The Object Guardian",
			Riddle: `A silent guardian bides her time.
Seek the lady, her story profound,
A mother, a founder, forever renowned.
Who is she, and what wisdom does she share?
Her presence whispers a legacy rare.`,
			Code: "HTML5GoldRush",
		},
		{
			Title:  "The Rising Temple",
			Riddle: `At the edge where paths converge and bend,
A temple is rising, on which peace depends.
Cradled by green, with a view so vast,
A quiet refuge, where moments last.

What place is blooming, serene and bright,
A haven of calm, bathed in light?`,
			Code: "CSSMysticTrail",
		},
		{
			Title:  "The Humble Shade",
			Riddle: `A humble shade stands, quiet and blessed.
In front of the place where smiles are made,
A simple retreat, in the shade.
What is this spot, serene and small,
A peaceful corner, welcoming all?`,
			Code: "DecodeTheDOM",
		},
		{
			Title:  "The Sholay Scene",
			Riddle: `Right by the halls, where footsteps fade,
A patch of green, like a scene in *Sholay*'s shade.
Amidst the hustle, a quiet space,
Like a tale, full of grace.
What spot is this, where calm is found,
A green escape, where peace resounds?`,
			Code: "JSPathfinder",
		},
		{
			Title:  "The Field Haven",
			Riddle: `Beside the field where the ball does fly,
A quiet refuge, where footsteps lie.
A hidden haven where knowledge aligns.
What place is this, where echoes cease,
A secret shelter, a moment of peace?`,
			Code: "APIExplorer22",
		},
		{
			Title:  "The Proud Monument",
			Riddle: `In front of the building where the name stands tall,
A statue of pride, a symbol for all.
Beside the waters, where ripples play,
A quiet corner to end your day.
What place is this, where stillness flows,
A monument of pride where calmness grows?`,
			Code: "APIExplorer22",
		},
		{
			Title:  "The Gateway",
			Riddle: `At the gate where daily steps converge,
A threshold where journeys and minds emerge.
Yet here, a stillness, softly embraced.
What is this space, where time slows down,
A fleeting moment, just beyond the town?`,
			Code: "CodeQuest2025",
		},
		{
			Title:  "The Cozy Corner",
			Riddle: `Where the cobblestones meet the sea breeze, and the quiet hum of the city fades,
a warm corner invites with the scent of roasted beans and a touch of something fresh from the oven,
waiting to be discovered.`,
			Code: "XtremeDebugger",
		},
		{
			Title:  "The Peaceful Path",
			Riddle: `Where worth rest and shadows blend,
Beside the lot where pathways end.
Facing knowledge, calm and wide,
What is this place where peace resides?`,
			Code: "BugBountyHunt",
		},
		{
			Title:  "The Student Hub",
			Riddle: `Where hunger meets a daily need,
A bustling spot where students feed.
Coupons in hand, the rule is clear,
What is this place we hold so dear?`,
			Code: "NirmaanKnights",
		},
		{
			Title:  "The Silent Space",
			Riddle: `Once alive with chatter and cheer,
Now silent, its purpose unclear.
A lone printer hums where meals once lay,
What is this place of a bygone day?`,
			Code: "NirmaanKnights",
		},
		{
			Title:  "The Serene Jewel",
			Riddle: `A heaven of calm, both deep and wide,
Where whispers and silence collide.
A place for the bold, a retreat for the still,
A shimmering jewel that tests your will.
What is this space, so serene and grand?`,
			Code: "DOMVoyagers",
		},
		{
			Title:  "The Colorful Steps",
			Riddle: `Steps of color, bright and rare,
A lively path beyond compare.
A place of cheer, where stories unfold,
What is this spot so vibrant and bold?`,
			Code: "TreasureInCode",
		},
		{
			Title:  "The Elegant Haven",
			Riddle: `Where whispers of luxury fill the air,
And every corner breathes beauty rare.
A place where elegance and taste collide,
With each sip, a world unfolds,
A treasure trove that quietly holds.
What is this space, where time stands still,
A haven of grace, both rich and tranquil?`,
			Code: "BackendBandits",
		},
		{
			Title:  "The Arena Lot",
			Riddle: `Where the arena roars, but wheels stand still,
A parking lot where calmness fills.
In front of the game, where energy flows,
What is this spot where quietness grows?`,
			Code: "FullStackFury",
		},
		{
			Title:  "The Guarded Gate",
			Riddle: `Entry and exits with proof in hand,
A threshold where all must make their stand.
Guarded and quiet, yet paths unfold,
Where is the spot, both strict and bold?`,
			Code: "CipherCrafters",
		},
		{
			Title:  "The Patient Path",
			Riddle: `Patience Is All The Strength That Man Need's`,
			Code: "FrontendFrenzy",
		},
	}
}
