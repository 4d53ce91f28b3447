package personnel

// Name pools, drawn uniformly. First names are sex-specific.

var maleFirstNames = []string{
	"Aaron", "Adam", "Adrian", "Alan", "Albert", "Alexander", "Andrew",
	"Anthony", "Arthur", "Benjamin", "Brandon", "Brian", "Carl", "Charles",
	"Christopher", "Daniel", "David", "Dennis", "Donald", "Edward", "Eric",
	"Frank", "Gary", "George", "Gregory", "Henry", "Jack", "James", "Jason",
	"Jeffrey", "John", "Jonathan", "Joseph", "Joshua", "Kenneth", "Kevin",
	"Lawrence", "Luis", "Marcus", "Mark", "Matthew", "Michael", "Nathan",
	"Oscar", "Patrick", "Paul", "Peter", "Raymond", "Richard", "Robert",
	"Roger", "Ryan", "Samuel", "Scott", "Stephen", "Thomas", "Victor",
	"Walter", "William",
}

var femaleFirstNames = []string{
	"Alice", "Amanda", "Amy", "Andrea", "Angela", "Anna", "Barbara",
	"Betty", "Brenda", "Carol", "Catherine", "Christine", "Cynthia",
	"Deborah", "Diana", "Dorothy", "Elizabeth", "Emily", "Emma", "Frances",
	"Grace", "Hannah", "Helen", "Jacqueline", "Janet", "Jennifer", "Jessica",
	"Joan", "Julia", "Karen", "Katherine", "Kimberly", "Laura", "Linda",
	"Lisa", "Margaret", "Maria", "Martha", "Mary", "Megan", "Melissa",
	"Michelle", "Nancy", "Nicole", "Olivia", "Pamela", "Patricia", "Rachel",
	"Rebecca", "Rose", "Ruth", "Sandra", "Sarah", "Sharon", "Sophia",
	"Susan", "Teresa", "Virginia", "Wendy",
}

var lastNames = []string{
	"Adams", "Anderson", "Baker", "Bell", "Bennett", "Brooks", "Brown",
	"Campbell", "Carter", "Chen", "Clark", "Collins", "Cooper", "Cruz",
	"Davis", "Diaz", "Edwards", "Evans", "Fisher", "Flores", "Foster",
	"Garcia", "Gonzalez", "Gray", "Green", "Hall", "Harris", "Hayes",
	"Hernandez", "Hill", "Hughes", "Jackson", "Jenkins", "Johnson", "Jones",
	"Kelly", "Kim", "King", "Lee", "Lewis", "Lopez", "Martin", "Martinez",
	"Miller", "Mitchell", "Moore", "Morgan", "Murphy", "Nelson", "Nguyen",
	"Novak", "Parker", "Perez", "Peterson", "Phillips", "Price", "Ramirez",
	"Reed", "Reyes", "Rivera", "Roberts", "Robinson", "Rodriguez", "Ross",
	"Russell", "Sanchez", "Scott", "Smith", "Stewart", "Sullivan", "Taylor",
	"Thomas", "Torres", "Turner", "Walker", "Ward", "Watson", "White",
	"Williams", "Wilson", "Wright", "Young",
}
