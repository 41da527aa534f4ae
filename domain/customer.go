package domain

type Customer struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Contact       string `db:"contact" json:"contact"`
	Address       string `db:"address" json:"address"`
	DoctorName    string `db:"doctor_name" json:"doctor_name"`
	DoctorAddress string `db:"doctor_address" json:"doctor_address"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}
