package service

import "strings"

const flatHeader = "client_id,age,job,marital,education,credit_default,housing,loan,campaign,month,day_of_week,duration,pdays,previous,poutcome,y,emp_var_rate,cons_price_idx,euribor3m,nr_employed"

func flatCSV(rows ...string) string {
	return strings.Join(append([]string{flatHeader}, rows...), "\n") + "\n"
}

var (
	rowAdmin   = "0,56,admin.,married,basic.4y,no,no,no,1,may,mon,261,999,0,nonexistent,no,1.1,93.994,4.857,5191.0"
	rowBlue    = "1,57,blue-collar,married,unknown,unknown,no,no,1,jun,tue,149,999,1,failure,yes,1.4,94.465,4.961,5228.1"
	rowService = "2,37,services,single,high.school,no,yes,no,3,nov,fri,226,6,2,success,yes,-0.1,93.2,4.021,5195.8"
)
