package mcpserver

// JournalFormatContract describes the record shapes LLM consumers must
// follow when writing to the journal.
const JournalFormatContract = `# Famories Journal Format Contract

The journal holds three independent collections. Every record carries an
opaque string id assigned on create; never invent ids.

## Memory

` + "```" + `json
{
  "title": "Beach trip",
  "description": "What happened, in the user's words",
  "date": "2023-07-01",
  "emotion": ["Happy", "Grateful"],
  "tags": ["vacation"],
  "people": ["Ana"],
  "location": "Coast"
}
` + "```" + `

Rules:

1. **date** is a calendar date in YYYY-MM-DD form.
2. **emotion** entries must come from: Happy, Sad, Excited, Scared,
   Angry, Grateful. The list is ordered and may repeat.
3. **tags** are free text; empty tokens are dropped.
4. **people** are family member *names*, not ids. They are weak
   references: nothing checks the member exists, and a rename elsewhere
   does not update them.

## Family member

` + "```" + `json
{
  "name": "Ana",
  "relation": "Myself",
  "age": 30,
  "hobbies": ["painting"],
  "relations": [{"to": "<member-id>", "type": "parent"}]
}
` + "```" + `

Rules:

1. **relation** must come from: Myself, Parent, Sibling, Spouse, Child,
   Cousin, Father, Mother, Bhabi, niece, nephew, Other.
2. **age** is 0-120.
3. **relations** edges are directed; "type" is one of parent, child,
   spouse, sibling. An edge whose target was deleted may dangle; readers
   must skip edges whose "to" id no longer exists.

## Food log

` + "```" + `json
{
  "name": "Leo",
  "food": "Peanuts",
  "reaction": "hives",
  "meal_time": "Snack",
  "date": "2024-03-10"
}
` + "```" + `

Rules:

1. **meal_time** must come from: Breakfast, Lunch, Dinner, Snack.
2. An empty **reaction** means no reaction; such entries are excluded
   from the allergen frequency chart.
3. **name** should match a family member name but is not enforced.
`
